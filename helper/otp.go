package helper

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/models"
)

const OTPExpiryMinutes = 10

// GenerateOTP returns a 6-digit numeric code.
func GenerateOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// CreateAndStoreOTP invalidates every prior unverified OTP for the phone
// (scoped to the user when one is given) and inserts a fresh code, so at
// most one code is live per phone at any time. Runs inside the caller's
// transaction.
func CreateAndStoreOTP(tx *gorm.DB, phone string, userID *uint, email, name string, expiryMinutes int) (string, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = OTPExpiryMinutes
	}

	stale := tx.Model(&models.Otp{}).Where("phone = ? AND verified = ?", phone, false)
	if userID != nil {
		stale = stale.Where("user_id = ?", *userID)
	}
	if err := stale.Update("verified", true).Error; err != nil {
		return "", err
	}

	code := GenerateOTP()
	otp := models.Otp{
		UserID:    userID,
		Phone:     phone,
		Email:     email,
		Name:      name,
		Code:      code,
		Verified:  false,
		ExpiresAt: time.Now().Add(time.Duration(expiryMinutes) * time.Minute),
	}
	if err := tx.Create(&otp).Error; err != nil {
		return "", err
	}
	return code, nil
}

// SendOTP emails the code. Delivery is best-effort: a missing API key or a
// provider failure is logged and never fails the caller.
func SendOTP(code, email, purpose string) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" || email == "" {
		logrus.Infof("OTP email skipped (not configured), purpose=%s otp=%s", purpose, code)
		return
	}

	subject := "OTP for completing your registration"
	if purpose == "forgot_password" {
		subject = "OTP for resetting your password"
	}
	body := fmt.Sprintf("Your OTP code is: %s. The OTP is valid only for %d minutes.", code, OTPExpiryMinutes)

	from := mail.NewEmail("Bazario", os.Getenv("OTP_FROM_EMAIL"))
	to := mail.NewEmail("", email)
	message := mail.NewSingleEmail(from, subject, to, body, fmt.Sprintf("<p>%s</p>", body))

	client := sendgrid.NewSendClient(apiKey)
	if _, err := client.Send(message); err != nil {
		logrus.Errorf("OTP email to %s failed: %v", email, err)
		return
	}
	logrus.Infof("OTP email sent to %s", email)
}
