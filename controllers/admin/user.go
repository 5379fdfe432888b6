package adminControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

type AddUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"required,phone10"`
	Age      int    `json:"age" binding:"required,min=1"`
	DOB      string `json:"dob" binding:"required"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Name     string `json:"name" binding:"omitempty,min=2"`
	Phone    string `json:"phone" binding:"omitempty,phone10"`
	Age      *int   `json:"age" binding:"omitempty,min=1"`
	DOB      string `json:"dob" binding:"omitempty"`
}

type UserStatusRequest struct {
	Status *int `json:"status" binding:"required,oneof=0 1"`
}

// GET /admin/users
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 10, 100)

		query := db.Model(&models.User{})
		if s := c.Query("status"); s != "" {
			query = query.Where("status = ?", s)
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var users []models.User
		if err := query.Preload("Creator").
			Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&users).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":      users,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// GET /admin/users/:id
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.Preload("Addresses").Preload("Creator").
			First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// PUT /admin/users/:id/status
func SetUserStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserStatusRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var user models.User
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&user, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("User")
				}
				return err
			}
			return tx.Model(&user).Update("status", *req.Status).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "User status updated successfully",
			"user": gin.H{
				"id":     user.ID,
				"name":   user.Name,
				"email":  user.Email,
				"status": user.Status,
			},
		})
	}
}

// POST /admin/users
// Admin-created users skip the OTP flow: the password is set up front and
// the creator admin is recorded on the row.
func AddUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := middleware.AdminID(c)

		var req AddUserRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid dob, expected YYYY-MM-DD"})
			return
		}

		var user models.User
		err = db.Transaction(func(tx *gorm.DB) error {
			var existing models.User
			err := tx.Where("email = ? OR phone = ?", req.Email, req.Phone).First(&existing).Error
			if err == nil {
				if existing.Email == req.Email {
					return helper.BadRequest("Email already registered")
				}
				return helper.BadRequest("Phone number already registered")
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			hashedStr := string(hashed)

			user = models.User{
				Email:     req.Email,
				Name:      req.Name,
				Phone:     req.Phone,
				Password:  &hashedStr,
				Age:       req.Age,
				DOB:       dob,
				Status:    models.StatusActive,
				CreatedBy: &adminID,
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user": gin.H{
				"id":         user.ID,
				"email":      user.Email,
				"name":       user.Name,
				"phone":      user.Phone,
				"age":        user.Age,
				"dob":        user.DOB,
				"status":     user.Status,
				"created_by": user.CreatedBy,
			},
		})
	}
}

// PUT /admin/users/:id
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateUserRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var user models.User
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&user, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("User")
				}
				return err
			}

			if req.Email != "" && req.Email != user.Email {
				var existing models.User
				if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
					return helper.BadRequest("Email already registered")
				} else if err != gorm.ErrRecordNotFound {
					return err
				}
			}
			if req.Phone != "" && req.Phone != user.Phone {
				var existing models.User
				if err := tx.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
					return helper.BadRequest("Phone number already registered")
				} else if err != gorm.ErrRecordNotFound {
					return err
				}
			}

			updates := make(map[string]interface{})
			if req.Email != "" {
				updates["email"] = req.Email
			}
			if req.Name != "" {
				updates["name"] = req.Name
			}
			if req.Phone != "" {
				updates["phone"] = req.Phone
			}
			if req.Age != nil {
				updates["age"] = *req.Age
			}
			if req.DOB != "" {
				dob, err := time.Parse("2006-01-02", req.DOB)
				if err != nil {
					return helper.BadRequest("Invalid dob, expected YYYY-MM-DD")
				}
				updates["dob"] = dob
			}
			if req.Password != "" {
				hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				updates["password"] = string(hashed)
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
			"message": "User updated successfully",
			"user": gin.H{
				"id":     user.ID,
				"email":  user.Email,
				"name":   user.Name,
				"phone":  user.Phone,
				"age":    user.Age,
				"dob":    user.DOB,
				"status": user.Status,
			},
		})
	}
}

// DELETE /admin/users/:id
// Addresses and OTPs go with the user.
func RemoveUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("User")
				}
				return err
			}

			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Address{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Otp{}).Error; err != nil {
				return err
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// GET /admin/users/:id/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 10, 100)

		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		var count int64
		if err := db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var orders []models.Order
		if err := db.Where("user_id = ?", user.ID).
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
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"phone": user.Phone,
			},
			"orders":     orders,
			"pagination": helper.Paginate(count, params),
		})
	}
}
