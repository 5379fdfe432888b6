package userControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/controllers/feed"
	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

type AddToCartRequest struct {
	Quantity int `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	AddressID uint `json:"addressId" binding:"required,min=1"`
}

// POST /user/products/:id/add-to-cart
// Adding a product already in the cart merges quantities; the stock check
// runs against the merged total.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid product ID"})
			return
		}

		var req AddToCartRequest
		if !helper.BindJSON(c, &req) {
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Product")
				}
				return err
			}

			if product.Stock < req.Quantity {
				return helper.BadRequest("Insufficient stock")
			}

			var item models.Cart
			err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
			switch {
			case err == gorm.ErrRecordNotFound:
				item = models.Cart{
					UserID:    userID,
					ProductID: uint(productID),
					Quantity:  req.Quantity,
				}
				return tx.Create(&item).Error
			case err != nil:
				return err
			}

			merged := item.Quantity + req.Quantity
			if product.Stock < merged {
				return helper.BadRequest("Insufficient stock")
			}
			return tx.Model(&item).Update("quantity", merged).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product added to cart successfully",
		})
	}
}

// GET /user/cart
// Total is recomputed from live product prices on every read, never stored.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var items []models.Cart
		if err := db.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&items).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		total := 0.0
		for _, item := range items {
			if item.Product != nil {
				total += item.Product.Price * float64(item.Quantity)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"items":   items,
			"total":   total,
		})
	}
}

// PUT /user/cart/:id
// The new quantity is absolute, so stock is re-checked against it rather
// than against a delta.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		cartID := c.Param("id")

		var req UpdateCartItemRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var item models.Cart
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Preload("Product").
				Where("id = ? AND user_id = ?", cartID, userID).
				First(&item).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Cart item")
				}
				return err
			}

			if item.Product == nil || item.Product.Stock < req.Quantity {
				return helper.BadRequest("Insufficient stock")
			}

			item.Quantity = req.Quantity
			return tx.Model(&models.Cart{}).Where("id = ?", item.ID).Update("quantity", req.Quantity).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Cart item updated successfully",
			"cartItem": item,
		})
	}
}

// DELETE /user/cart/:id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		cartID := c.Param("id")

		result := db.Where("id = ? AND user_id = ?", cartID, userID).Delete(&models.Cart{})
		if result.Error != nil {
			helper.WriteError(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Item removed from cart successfully",
		})
	}
}

// POST /user/cart/checkout
// Converts the cart into an order, order items, a payment record, and stock
// decrements as one atomic unit; any failure rolls the whole set back.
func Checkout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req CheckoutRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var cartItems []models.Cart
			if err := tx.Preload("Product").
				Where("user_id = ?", userID).
				Find(&cartItems).Error; err != nil {
				return err
			}
			if len(cartItems) == 0 {
				return helper.BadRequest("Cart is empty")
			}

			var address models.Address
			if err := tx.Where("id = ? AND user_id = ?", req.AddressID, userID).
				First(&address).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Address")
				}
				return err
			}

			// All lines are validated before anything is written so a
			// single short line aborts the whole checkout.
			totalAmount := 0.0
			for _, item := range cartItems {
				if item.Product == nil {
					return helper.NotFound("Product")
				}
				if item.Product.Stock < item.Quantity {
					return helper.BadRequest("Insufficient stock for product: " + item.Product.Name)
				}
				totalAmount += item.Product.Price * float64(item.Quantity)
			}

			addressID := req.AddressID
			order = models.Order{
				UserID:      userID,
				AddressID:   &addressID,
				Status:      models.OrderStatusPending,
				TotalAmount: totalAmount,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			for _, item := range cartItems {
				orderItem := models.OrderItem{
					OrderID:   order.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					Price:     item.Product.Price,
				}
				if err := tx.Create(&orderItem).Error; err != nil {
					return err
				}

				item.Product.Stock -= item.Quantity
				if err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					Update("stock", item.Product.Stock).Error; err != nil {
					return err
				}
			}

			payment := models.Payment{
				OrderID:       order.ID,
				Amount:        totalAmount,
				TransactionID: uuid.NewString(),
				Status:        models.PaymentStatusSuccess,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			return tx.Where("user_id = ?", userID).Delete(&models.Cart{}).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		feed.BroadcastOrder(order)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully",
			"order": gin.H{
				"id":          order.ID,
				"totalAmount": order.TotalAmount,
				"status":      order.Status,
			},
		})
	}
}
