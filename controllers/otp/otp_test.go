package otpControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	helper.RegisterValidators()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Otp{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newOtpRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	otp := r.Group("/otp")
	{
		otp.POST("/send", Send(db))
		otp.POST("/verify", Verify(db))
		otp.POST("/reset_password", ResetPassword(db))
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Name: "Test", Email: "t@example.com", Phone: "9876543210", Status: models.StatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestSendRequiresMatchingAccount(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db)
	r := newOtpRouter(db)

	// Right phone, wrong email.
	w, _ := doJSON(t, r, "POST", "/otp/send", map[string]string{"phone": "9876543210", "email": "wrong@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for mismatched account", w.Code)
	}

	w, body := doJSON(t, r, "POST", "/otp/send", map[string]string{"phone": "9876543210", "email": "t@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if code, _ := body["otp"].(string); len(code) != 6 {
		t.Fatalf("otp = %v, want a 6-digit code", body["otp"])
	}
}

func TestSendInvalidatesPriorCode(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db)
	r := newOtpRouter(db)

	_, first := doJSON(t, r, "POST", "/otp/send", map[string]string{"phone": "9876543210", "email": "t@example.com"})
	_, _ = doJSON(t, r, "POST", "/otp/send", map[string]string{"phone": "9876543210", "email": "t@example.com"})

	// The first code is dead once a second one is issued.
	w, body := doJSON(t, r, "POST", "/otp/verify", map[string]string{"phone": "9876543210", "otp": first["otp"].(string)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, superseded code must be rejected", w.Code)
	}
	if body["error"] != "Invalid or expired OTP" {
		t.Fatalf("error = %v", body["error"])
	}

	var live int64
	db.Model(&models.Otp{}).Where("verified = ?", false).Count(&live)
	if live != 1 {
		t.Fatalf("live codes = %d, want exactly 1", live)
	}
}

func TestVerifyAcceptsLiveCodeOnce(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db)
	r := newOtpRouter(db)

	_, sent := doJSON(t, r, "POST", "/otp/send", map[string]string{"phone": "9876543210", "email": "t@example.com"})
	code := sent["otp"].(string)

	w, _ := doJSON(t, r, "POST", "/otp/verify", map[string]string{"phone": "9876543210", "otp": code})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: status %d, body %s", w.Code, w.Body.String())
	}

	// Second verify of the same code fails: it is consumed.
	w, _ = doJSON(t, r, "POST", "/otp/verify", map[string]string{"phone": "9876543210", "otp": code})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, consumed code must be rejected", w.Code)
	}
}

func TestVerifyRejectsExpiredCode(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := newOtpRouter(db)

	otp := models.Otp{
		UserID: &user.ID, Phone: user.Phone, Code: "123456",
		Verified: false, ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&otp).Error; err != nil {
		t.Fatalf("seed otp: %v", err)
	}

	w, _ := doJSON(t, r, "POST", "/otp/verify", map[string]string{"phone": user.Phone, "otp": "123456"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expired code must be rejected", w.Code)
	}
}

func TestResetPasswordRequiresVerifiedCode(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := newOtpRouter(db)

	// No verified code yet.
	w, _ := doJSON(t, r, "POST", "/otp/reset_password", map[string]string{"phone": user.Phone, "newPassword": "hunter22"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, reset without verification must fail", w.Code)
	}

	_, sent := doJSON(t, r, "POST", "/otp/send", map[string]string{"phone": user.Phone, "email": user.Email})
	if w, _ := doJSON(t, r, "POST", "/otp/verify", map[string]string{"phone": user.Phone, "otp": sent["otp"].(string)}); w.Code != http.StatusOK {
		t.Fatalf("verify: status %d", w.Code)
	}

	w, _ = doJSON(t, r, "POST", "/otp/reset_password", map[string]string{"phone": user.Phone, "newPassword": "hunter22"})
	if w.Code != http.StatusOK {
		t.Fatalf("reset: status %d, body %s", w.Code, w.Body.String())
	}

	var got models.User
	db.First(&got, user.ID)
	if got.Password == nil {
		t.Fatal("password not set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*got.Password), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestResetPasswordValidatesLength(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := newOtpRouter(db)

	w, _ := doJSON(t, r, "POST", "/otp/reset_password", map[string]string{"phone": user.Phone, "newPassword": "abc"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for short password", w.Code)
	}
}
