package userControllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/middleware"
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
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Address{},
		&models.Product{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Otp{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// asUser bypasses token auth and injects the user id the way the real
// middleware does.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Next()
	}
}

func newUserRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	user := r.Group("/user", asUser(userID))
	{
		user.POST("/products/:id/add-to-cart", AddToCart(db))
		user.GET("/cart", GetCart(db))
		user.PUT("/cart/:id", UpdateCartItem(db))
		user.DELETE("/cart/:id", RemoveCartItem(db))
		user.POST("/cart/checkout", Checkout(db))
		user.POST("/payments", ProcessPayment(db))
		user.GET("/orders", ListOrders(db))
		user.GET("/orders/:id", GetOrder(db))
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
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

func seedUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	user := models.User{ID: id, Name: "Test User", Email: "user@example.com", Phone: "9876543210", Status: models.StatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	address := models.Address{
		UserID: userID, Area: "MG Road", Division: "Central", City: "Kochi",
		District: "Ernakulam", State: "Kerala", Pincode: "682016", Country: "India",
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return address
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return product
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
