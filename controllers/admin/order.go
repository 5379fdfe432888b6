package adminControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/controllers/feed"
	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/models"
)

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

type PlaceOrderItem struct {
	ProductID uint `json:"productId" binding:"required,min=1"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type PlaceForUserRequest struct {
	UserID    uint             `json:"userId" binding:"required,min=1"`
	AddressID uint             `json:"addressId" binding:"required,min=1"`
	Items     []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
}

// GET /admin/orders
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 20, 100)

		query := db.Model(&models.Order{})
		if s := c.Query("status"); s != "" {
			query = query.Where("status = ?", s)
		}
		if u := c.Query("userId"); u != "" {
			query = query.Where("user_id = ?", u)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var orders []models.Order
		if err := query.Preload("User").
			Preload("Address").
			Preload("Items.Product").
			Preload("Payment").
			Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&orders).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "All orders retrieved successfully",
			"data":       orders,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// PUT /admin/orders/:id/status
// All five pipeline statuses are mutually reachable. The single enforced
// side effect: entering "cancelled" from any other status returns each
// item's quantity to its product's stock. The status guard makes a repeat
// cancel a no-op, so stock is never restored twice.
func SetOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderStatusRequest
		if !helper.BindJSON(c, &req) {
			return
		}
		newStatus := models.OrderStatus(req.Status)

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&order, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Order")
				}
				return err
			}

			if newStatus == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
				var items []models.OrderItem
				if err := tx.Preload("Product").
					Where("order_id = ?", order.ID).
					Find(&items).Error; err != nil {
					return err
				}
				for _, item := range items {
					// Nothing to restore when the product row is gone.
					if item.Product == nil {
						continue
					}
					if err := tx.Model(&models.Product{}).
						Where("id = ?", item.ProductID).
						Update("stock", item.Product.Stock+item.Quantity).Error; err != nil {
						return err
					}
				}
			}

			order.Status = newStatus
			return tx.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("status", newStatus).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		feed.BroadcastOrder(order)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order status updated successfully",
			"order": gin.H{
				"id":          order.ID,
				"status":      order.Status,
				"totalAmount": order.TotalAmount,
			},
		})
	}
}

// GET /admin/orders/payments
func ListAllPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 20, 100)

		query := db.Model(&models.Payment{})
		if s := c.Query("status"); s != "" {
			query = query.Where("status = ?", s)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var payments []models.Payment
		if err := query.Preload("Order.User").
			Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&payments).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"payments":   payments,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// POST /admin/orders/place_for_user
// Same atomic algorithm as user checkout, but the item list is explicit
// and no cart is involved or cleared.
func PlaceForUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceForUserRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "id = ?", req.UserID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("User")
				}
				return err
			}

			var address models.Address
			if err := tx.Where("id = ? AND user_id = ?", req.AddressID, req.UserID).
				First(&address).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Address")
				}
				return err
			}

			// Duplicate product lines are summed so stock is validated
			// and decremented against the combined quantity.
			need := make(map[uint]int, len(req.Items))
			for _, item := range req.Items {
				need[item.ProductID] += item.Quantity
			}

			totalAmount := 0.0
			products := make(map[uint]models.Product, len(need))
			for _, item := range req.Items {
				if _, ok := products[item.ProductID]; ok {
					continue
				}
				var product models.Product
				if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						return helper.NotFound(fmt.Sprintf("Product with ID %d", item.ProductID))
					}
					return err
				}
				if product.Stock < need[item.ProductID] {
					return helper.BadRequest("Insufficient stock for product: " + product.Name)
				}
				products[item.ProductID] = product
			}
			for _, item := range req.Items {
				totalAmount += products[item.ProductID].Price * float64(item.Quantity)
			}

			addressID := req.AddressID
			order = models.Order{
				UserID:      req.UserID,
				AddressID:   &addressID,
				Status:      models.OrderStatusPending,
				TotalAmount: totalAmount,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			for _, item := range req.Items {
				orderItem := models.OrderItem{
					OrderID:   order.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					Price:     products[item.ProductID].Price,
				}
				if err := tx.Create(&orderItem).Error; err != nil {
					return err
				}
			}
			for id, product := range products {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", id).
					Update("stock", product.Stock-need[id]).Error; err != nil {
					return err
				}
			}

			payment := models.Payment{
				OrderID:       order.ID,
				Amount:        totalAmount,
				TransactionID: uuid.NewString(),
				Status:        models.PaymentStatusSuccess,
			}
			return tx.Create(&payment).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		feed.BroadcastOrder(order)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully for user",
			"order": gin.H{
				"id":          order.ID,
				"userId":      order.UserID,
				"totalAmount": order.TotalAmount,
				"status":      order.Status,
			},
		})
	}
}

// GET /admin/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("User").
			Preload("Address").
			Preload("Items.Product").
			Preload("Payment").
			First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
