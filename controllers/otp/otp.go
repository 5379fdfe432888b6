package otpControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/models"
)

type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,phone10"`
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,phone10"`
	Otp   string `json:"otp" binding:"required,len=6"`
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone" binding:"required,phone10"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// POST /otp/send
// Forgot-password entry point: both phone and email must belong to the
// same existing account before a code is issued.
func Send(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendOTPRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var code string
		var user models.User
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("phone = ? AND email = ?", req.Phone, req.Email).
				First(&user).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.BadRequest("No account matches the given phone and email")
				}
				return err
			}

			var err error
			code, err = helper.CreateAndStoreOTP(tx, req.Phone, &user.ID, req.Email, user.Name, helper.OTPExpiryMinutes)
			return err
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		helper.SendOTP(code, req.Email, "forgot_password")
		c.JSON(http.StatusOK, gin.H{
			"message": "OTP sent successfully",
			"otp":     code,
			"phone":   req.Phone,
		})
	}
}

// POST /otp/verify
func Verify(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var otp models.Otp
			if err := tx.Where("phone = ? AND otp = ? AND verified = ? AND expires_at > ?",
				req.Phone, req.Otp, false, time.Now()).
				Order("created_at DESC").
				First(&otp).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.BadRequest("Invalid or expired OTP")
				}
				return err
			}
			return tx.Model(&otp).Update("verified", true).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
	}
}

// POST /otp/reset_password
// Requires a recently verified, still unexpired code for the phone, so
// Verify must have succeeded within the expiry window.
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var otp models.Otp
			if err := tx.Where("phone = ? AND verified = ? AND expires_at > ?",
				req.Phone, true, time.Now()).
				Order("created_at DESC").
				First(&otp).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.BadRequest("OTP verification required before resetting password")
				}
				return err
			}

			var user models.User
			if err := tx.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("User")
				}
				return err
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			return tx.Model(&user).Update("password", string(hashed)).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
	}
}

// GET /otp/status/:userId
func GetStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var otp models.Otp
		if err := db.Where("user_id = ?", c.Param("userId")).
			Order("created_at DESC").
			First(&otp).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "No OTP found for user"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"userId":    otp.UserID,
			"phone":     otp.Phone,
			"verified":  otp.Verified,
			"expired":   time.Now().After(otp.ExpiresAt),
			"expiresAt": otp.ExpiresAt,
			"createdAt": otp.CreatedAt,
		})
	}
}

// GET /otp/history/:userId
func GetHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 10, 100)

		var count int64
		if err := db.Model(&models.Otp{}).Where("user_id = ?", c.Param("userId")).Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var otps []models.Otp
		if err := db.Where("user_id = ?", c.Param("userId")).
			Order("created_at DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&otps).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "OTP history retrieved successfully",
			"otps":       otps,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// DELETE /otp/clear/:userId
func Clear(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("user_id = ?", c.Param("userId")).Delete(&models.Otp{})
		if result.Error != nil {
			helper.WriteError(c, result.Error)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "OTP records cleared",
			"deleted": result.RowsAffected,
		})
	}
}
