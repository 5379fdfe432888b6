package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

// GET /user/orders
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		params := helper.ParsePageParams(c, 20, 50)

		var count int64
		if err := db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Address").
			Preload("Items.Product").
			Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&orders).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "User orders retrieved successfully",
			"data":       orders,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// GET /user/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			Preload("Address").
			Preload("Items.Product").
			Preload("Payment").
			First(&order).Error; err != nil {
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
