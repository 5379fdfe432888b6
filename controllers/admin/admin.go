package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/auth"
	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

type AdminLoginRequest struct {
	Phone    string `json:"phone" binding:"omitempty,min=10"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type AdminRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"required,min=10"`
	Type     string `json:"type" binding:"omitempty,oneof=ADMIN SUPER_ADMIN"`
}

type AdminUpdateRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Name  string `json:"name" binding:"omitempty,min=2"`
	Phone string `json:"phone" binding:"omitempty,min=10"`
	Type  string `json:"type" binding:"omitempty,oneof=ADMIN SUPER_ADMIN"`
}

type AdminStatusRequest struct {
	Status *int `json:"status" binding:"required,oneof=0 1"`
}

type AdminProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2"`
	Phone string `json:"phone" binding:"omitempty,min=10"`
}

func adminSummary(admin models.Admin) gin.H {
	return gin.H{
		"id":     admin.ID,
		"name":   admin.Name,
		"email":  admin.Email,
		"phone":  admin.Phone,
		"type":   admin.Type,
		"status": admin.Status,
	}
}

// POST /admin/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if !helper.BindJSON(c, &req) {
			return
		}
		if req.Phone == "" && req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number or email is required"})
			return
		}

		var admin models.Admin
		var token string
		err := db.Transaction(func(tx *gorm.DB) error {
			query := tx.Where("phone = ?", req.Phone)
			if req.Email != "" {
				query = tx.Where("email = ?", req.Email)
			}
			if err := query.First(&admin).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.Fail(http.StatusUnauthorized, "Invalid credentials")
				}
				return err
			}

			if admin.Status != models.StatusActive {
				return helper.Fail(http.StatusUnauthorized, "Account is deactivated")
			}
			if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
				return helper.Fail(http.StatusUnauthorized, "Invalid credentials")
			}

			var err error
			token, err = auth.IssueAdminToken(tx, admin.ID, admin.Type)
			return err
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Admin login successful",
			"admin":   adminSummary(admin),
			"token":   token,
		})
	}
}

// POST /admin/register — super admin only (enforced by route middleware).
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		creatorID := middleware.AdminID(c)

		var req AdminRegisterRequest
		if !helper.BindJSON(c, &req) {
			return
		}
		if req.Type == "" {
			req.Type = string(models.AdminTypeRegular)
		}

		var admin models.Admin
		err := db.Transaction(func(tx *gorm.DB) error {
			var existing models.Admin
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

			admin = models.Admin{
				Email:     req.Email,
				Password:  string(hashed),
				Name:      req.Name,
				Phone:     req.Phone,
				Type:      models.AdminType(req.Type),
				Status:    models.StatusActive,
				CreatedBy: &creatorID,
			}
			return tx.Create(&admin).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Admin registered successfully",
			"admin":   adminSummary(admin),
		})
	}
}

// GET /admin/admins
func List(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 10, 100)

		query := db.Model(&models.Admin{})
		if t := c.Query("type"); t != "" {
			query = query.Where("type = ?", t)
		}
		if s := c.Query("status"); s != "" {
			query = query.Where("status = ?", s)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var admins []models.Admin
		if err := query.Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&admins).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Admins retrieved successfully",
			"admins":     admins,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// GET /admin/admins/:id
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admin models.Admin
		if err := db.First(&admin, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin details", "admin": admin})
	}
}

// PUT /admin/admins/:id — super admin only.
func Update(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminUpdateRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var admin models.Admin
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&admin, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Admin")
				}
				return err
			}

			if req.Email != "" && req.Email != admin.Email {
				var existing models.Admin
				if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
					return helper.BadRequest("Email already registered")
				} else if err != gorm.ErrRecordNotFound {
					return err
				}
			}
			if req.Phone != "" && req.Phone != admin.Phone {
				var existing models.Admin
				if err := tx.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
					return helper.BadRequest("Phone number already registered")
				} else if err != gorm.ErrRecordNotFound {
					return err
				}
			}

			// Super admin rows never lose the tier.
			if admin.Type == models.AdminTypeSuper && req.Type == string(models.AdminTypeRegular) {
				return helper.Forbidden("Super admin accounts cannot be downgraded to regular admin")
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
			if req.Type != "" {
				updates["type"] = req.Type
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&admin).Updates(updates).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin updated successfully", "admin": adminSummary(admin)})
	}
}

// DELETE /admin/admins/:id — super admin only; super admin rows are undeletable.
func Remove(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := db.Transaction(func(tx *gorm.DB) error {
			var admin models.Admin
			if err := tx.First(&admin, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Admin")
				}
				return err
			}

			if admin.Type == models.AdminTypeSuper {
				return helper.Forbidden("Super admin accounts cannot be deleted")
			}
			return tx.Delete(&admin).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
	}
}

// PUT /admin/admins/:id/status — super admin only; super admins stay active.
func SetStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminStatusRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var admin models.Admin
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&admin, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Admin")
				}
				return err
			}

			if admin.Type == models.AdminTypeSuper && *req.Status == models.StatusInactive {
				return helper.Forbidden("Super admin accounts cannot be deactivated")
			}
			return tx.Model(&admin).Update("status", *req.Status).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Admin status updated successfully",
			"admin": gin.H{
				"id":     admin.ID,
				"name":   admin.Name,
				"status": admin.Status,
			},
		})
	}
}

// GET /admin/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := middleware.AdminID(c)

		var admin models.Admin
		if err := db.First(&admin, "id = ?", adminID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"admin": admin})
	}
}

// PUT /admin/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := middleware.AdminID(c)

		var req AdminProfileRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var admin models.Admin
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&admin, "id = ?", adminID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Admin")
				}
				return err
			}

			if req.Phone != "" && req.Phone != admin.Phone {
				var existing models.Admin
				if err := tx.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
					return helper.BadRequest("Phone number already registered")
				} else if err != gorm.ErrRecordNotFound {
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
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&admin).Updates(updates).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "admin": adminSummary(admin)})
	}
}
