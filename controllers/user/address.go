package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

type AddAddressRequest struct {
	Area     string `json:"area" binding:"required,min=2"`
	Division string `json:"division" binding:"required,min=2"`
	City     string `json:"city" binding:"required,min=2"`
	District string `json:"district" binding:"required,min=2"`
	State    string `json:"state" binding:"required,min=2"`
	Pincode  string `json:"pincode" binding:"required,pincode6"`
	Country  string `json:"country" binding:"omitempty,min=2"`
}

type UpdateAddressRequest struct {
	Area     string `json:"area" binding:"omitempty,min=2"`
	Division string `json:"division" binding:"omitempty,min=2"`
	City     string `json:"city" binding:"omitempty,min=2"`
	District string `json:"district" binding:"omitempty,min=2"`
	State    string `json:"state" binding:"omitempty,min=2"`
	Pincode  string `json:"pincode" binding:"omitempty,pincode6"`
	Country  string `json:"country" binding:"omitempty,min=2"`
}

// POST /user/addresses
func AddAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req AddAddressRequest
		if !helper.BindJSON(c, &req) {
			return
		}
		if req.Country == "" {
			req.Country = "India"
		}

		address := models.Address{
			UserID:   userID,
			Area:     req.Area,
			Division: req.Division,
			City:     req.City,
			District: req.District,
			State:    req.State,
			Pincode:  req.Pincode,
			Country:  req.Country,
		}
		if err := db.Create(&address).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Address added successfully", "address": address})
	}
}

// GET /user/addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		params := helper.ParsePageParams(c, 10, 100)

		var count int64
		if err := db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&addresses).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Addresses retrieved successfully",
			"addresses":  addresses,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// GET /user/addresses/:id
func GetAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Address retrieved successfully", "address": address})
	}
}

// PUT /user/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req UpdateAddressRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var address models.Address
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Address")
				}
				return err
			}

			updates := make(map[string]interface{})
			if req.Area != "" {
				updates["area"] = req.Area
			}
			if req.Division != "" {
				updates["division"] = req.Division
			}
			if req.City != "" {
				updates["city"] = req.City
			}
			if req.District != "" {
				updates["district"] = req.District
			}
			if req.State != "" {
				updates["state"] = req.State
			}
			if req.Pincode != "" {
				updates["pincode"] = req.Pincode
			}
			if req.Country != "" {
				updates["country"] = req.Country
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&address).Updates(updates).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "address": address})
	}
}

// DELETE /user/addresses/:id
func RemoveAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Address{})
		if result.Error != nil {
			helper.WriteError(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Address removed successfully"})
	}
}
