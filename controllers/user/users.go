package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2"`
	Phone string `json:"phone" binding:"omitempty,phone10"`
	Email string `json:"email" binding:"omitempty,email"`
}

// GET /user/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// PUT /user/profile
// Email/phone changes run the same duplicate pre-checks as registration,
// excluding the caller's own row.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req UpdateProfileRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var user models.User
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&user, "id = ?", userID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("User")
				}
				return err
			}

			if req.Email != "" || req.Phone != "" {
				var existing models.User
				query := tx.Where("id <> ?", userID)
				switch {
				case req.Email != "" && req.Phone != "":
					query = query.Where("email = ? OR phone = ?", req.Email, req.Phone)
				case req.Email != "":
					query = query.Where("email = ?", req.Email)
				default:
					query = query.Where("phone = ?", req.Phone)
				}
				err := query.First(&existing).Error
				if err == nil {
					return helper.BadRequest(duplicateUserMessage(existing, req.Email, req.Phone))
				}
				if err != gorm.ErrRecordNotFound {
					return err
				}
			}

			updates := make(map[string]interface{})
			if req.Name != "" {
				updates["name"] = req.Name
			}
			if req.Phone != "" {
				updates["phone"] = req.Phone
			}
			if req.Email != "" {
				updates["email"] = req.Email
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&user).Updates(updates).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Profile updated successfully",
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"phone": user.Phone,
			},
		})
	}
}
