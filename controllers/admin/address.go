package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/models"
)

type AdminAddAddressRequest struct {
	UserID   uint   `json:"userId" binding:"required,min=1"`
	Area     string `json:"area" binding:"required,min=2"`
	Division string `json:"division" binding:"required,min=2"`
	City     string `json:"city" binding:"required,min=2"`
	District string `json:"district" binding:"required,min=2"`
	State    string `json:"state" binding:"required,min=2"`
	Pincode  string `json:"pincode" binding:"required,pincode6"`
	Country  string `json:"country" binding:"omitempty,min=2"`
}

type AdminUpdateAddressRequest struct {
	Area     string `json:"area" binding:"omitempty,min=2"`
	Division string `json:"division" binding:"omitempty,min=2"`
	City     string `json:"city" binding:"omitempty,min=2"`
	District string `json:"district" binding:"omitempty,min=2"`
	State    string `json:"state" binding:"omitempty,min=2"`
	Pincode  string `json:"pincode" binding:"omitempty,pincode6"`
	Country  string `json:"country" binding:"omitempty,min=2"`
}

// GET /admin/addresses
func ListAllAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 20, 100)

		query := db.Model(&models.Address{})
		if u := c.Query("userId"); u != "" {
			query = query.Where("user_id = ?", u)
		}
		if s := c.Query("search"); s != "" {
			like := "%" + s + "%"
			query = query.Where("city LIKE ? OR district LIKE ? OR pincode LIKE ?", like, like, like)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var addresses []models.Address
		if err := query.Preload("User").
			Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&addresses).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Addresses retrieved successfully",
			"addresses":  addresses,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// POST /admin/addresses
func AddAddressForUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminAddAddressRequest
		if !helper.BindJSON(c, &req) {
			return
		}
		if req.Country == "" {
			req.Country = "India"
		}

		var address models.Address
		err := db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "id = ?", req.UserID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("User")
				}
				return err
			}

			address = models.Address{
				UserID:   req.UserID,
				Area:     req.Area,
				Division: req.Division,
				City:     req.City,
				District: req.District,
				State:    req.State,
				Pincode:  req.Pincode,
				Country:  req.Country,
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Address added successfully",
			"address": address,
		})
	}
}

// GET /admin/addresses/user/:userId
func GetAddressesByUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		params := helper.ParsePageParams(c, 10, 100)

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

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
			"success":    true,
			"message":    "Addresses retrieved successfully",
			"addresses":  addresses,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// GET /admin/addresses/:id
func GetAddressByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var address models.Address
		if err := db.Preload("User").First(&address, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Address not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "address": address})
	}
}

// PUT /admin/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminUpdateAddressRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var address models.Address
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&address, "id = ?", c.Param("id")).Error; err != nil {
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

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Address updated successfully",
			"address": address,
		})
	}
}

// DELETE /admin/addresses/:id
func RemoveAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Address{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			helper.WriteError(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Address not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address removed successfully"})
	}
}
