package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

type ProcessPaymentRequest struct {
	OrderID       uint    `json:"orderId" binding:"required,min=1"`
	Amount        float64 `json:"amount" binding:"required,min=0"`
	Method        string  `json:"method" binding:"required,oneof=card cash upi"`
	TransactionID string  `json:"transactionId" binding:"required,min=1"`
}

// POST /user/payments
// Recording a payment moves the order to "paid"; an order already paid is
// rejected before any write.
func ProcessPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req ProcessPaymentRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var payment models.Payment
		err := db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Order")
				}
				return err
			}

			if order.Status == models.OrderStatusPaid {
				return helper.BadRequest("Order already paid")
			}

			payment = models.Payment{
				OrderID:       req.OrderID,
				Amount:        req.Amount,
				Method:        models.PaymentMethod(req.Method),
				TransactionID: req.TransactionID,
				Status:        models.PaymentStatusCompleted,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			return tx.Model(&order).Update("status", models.OrderStatusPaid).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Payment processed successfully",
			"payment": gin.H{
				"id":     payment.ID,
				"amount": payment.Amount,
				"method": payment.Method,
				"status": payment.Status,
			},
		})
	}
}

// GET /user/payments
func ListPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		params := helper.ParsePageParams(c, 10, 100)

		base := db.Model(&models.Payment{}).
			Joins("JOIN orders ON orders.id = payments.order_id").
			Where("orders.user_id = ?", userID)

		var count int64
		if err := base.Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var payments []models.Payment
		if err := db.Preload("Order").
			Joins("JOIN orders ON orders.id = payments.order_id").
			Where("orders.user_id = ?", userID).
			Order("payments.created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&payments).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payments":   payments,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// GET /user/payments/:id
func GetPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var payment models.Payment
		if err := db.Preload("Order").
			Joins("JOIN orders ON orders.id = payments.order_id").
			Where("payments.id = ? AND orders.user_id = ?", c.Param("id"), userID).
			First(&payment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"payment": payment})
	}
}
