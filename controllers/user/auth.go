package userControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/auth"
	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
	"github.com/adithyakrishnan/bazario-api/models"
)

type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
	Phone string `json:"phone" binding:"required,phone10"`
	Age   int    `json:"age" binding:"required,min=1"`
	DOB   string `json:"dob" binding:"required"`
}

type VerifyOtpRequest struct {
	Phone string `json:"phone" binding:"required,phone10"`
	Otp   string `json:"otp" binding:"required,len=6"`
}

type SetPasswordRequest struct {
	Phone    string `json:"phone" binding:"required,phone10"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"omitempty,phone10"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// duplicateUserMessage distinguishes which field collided, matching the
// pre-check-query convention for duplicate registration.
func duplicateUserMessage(existing models.User, email, phone string) string {
	switch {
	case existing.Email == email:
		return "Email already registered"
	case existing.Phone == phone:
		return "Phone number already registered"
	default:
		return "Email or phone number already registered"
	}
}

// POST /auth/register
// Creates the user row immediately and issues a registration OTP; the
// account cannot log in until the OTP is verified and a password is set.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid dob, expected YYYY-MM-DD"})
			return
		}

		var token, otpCode string
		err = db.Transaction(func(tx *gorm.DB) error {
			var existing models.User
			err := tx.Where("email = ? OR phone = ?", req.Email, req.Phone).First(&existing).Error
			if err == nil {
				return helper.BadRequest(duplicateUserMessage(existing, req.Email, req.Phone))
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			user := models.User{
				Email:     req.Email,
				Name:      req.Name,
				Phone:     req.Phone,
				Age:       req.Age,
				DOB:       dob,
				Status:    models.StatusActive,
				TempToken: false,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			if token, err = auth.IssueUserToken(tx, user.ID, user.Email); err != nil {
				return err
			}

			otpCode, err = helper.CreateAndStoreOTP(tx, req.Phone, &user.ID, req.Email, req.Name, helper.OTPExpiryMinutes)
			return err
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		helper.SendOTP(otpCode, req.Email, "registration")

		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful. Please verify your email with the OTP sent.",
			"otp":     otpCode,
			"phone":   req.Phone,
			"token":   token,
		})
	}
}

// POST /auth/verify-otp
func VerifyRegistrationOtp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOtpRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var token string
		err := db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.BadRequest("User not found")
				}
				return err
			}

			var otp models.Otp
			err := tx.Where("phone = ? AND otp = ? AND user_id = ? AND verified = ? AND expires_at > ?",
				req.Phone, req.Otp, user.ID, false, time.Now()).
				Order("created_at DESC").
				First(&otp).Error
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.BadRequest("Invalid OTP")
				}
				return err
			}

			if err := tx.Model(&otp).Update("verified", true).Error; err != nil {
				return err
			}

			if token, err = auth.IssueUserToken(tx, user.ID, user.Email); err != nil {
				return err
			}
			return tx.Model(&user).Update("temp_token", true).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "OTP verified successfully. You can now set your password.",
			"phone":   req.Phone,
			"token":   token,
		})
	}
}

// POST /auth/set-password
func SetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetPasswordRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var user models.User
		var token string
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.BadRequest("User not found")
				}
				return err
			}
			if user.Password != nil {
				return helper.BadRequest("Password already set for this account")
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			if token, err = auth.IssueUserToken(tx, user.ID, user.Email); err != nil {
				return err
			}

			hashedStr := string(hashed)
			return tx.Model(&user).Updates(map[string]interface{}{
				"password":   hashedStr,
				"temp_token": true,
			}).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Password set successfully. You are now logged in.",
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"phone": user.Phone,
				"age":   user.Age,
				"dob":   user.DOB,
			},
			"token": token,
		})
	}
}

// POST /auth/login
// Accepts phone XOR email plus password. A successful login revokes every
// earlier session for the user.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		if req.Phone == "" && req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number or email is required"})
			return
		}
		if req.Phone != "" && req.Email != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide either phone number OR email, not both"})
			return
		}

		var user models.User
		var token string
		err := db.Transaction(func(tx *gorm.DB) error {
			query := tx.Where("phone = ?", req.Phone)
			if req.Email != "" {
				query = tx.Where("email = ?", req.Email)
			}
			if err := query.First(&user).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.Fail(http.StatusUnauthorized, "Invalid credentials")
				}
				return err
			}

			if user.Status != models.StatusActive {
				return helper.Fail(http.StatusUnauthorized, "Account is deactivated by the admin")
			}
			if user.Password == nil {
				return helper.Fail(http.StatusUnauthorized, "Please set your password first")
			}
			if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
				return helper.Fail(http.StatusUnauthorized, "Invalid credentials")
			}

			var err error
			token, err = auth.IssueUserToken(tx, user.ID, user.Email)
			return err
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"phone": user.Phone,
				"age":   user.Age,
				"dob":   user.DOB,
			},
			"token": token,
		})
	}
}

// POST /auth/logout
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		if err := auth.RevokeSessions(db, models.SubjectUser, userID); err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}
