package userControllers

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/models"
)

func seedOrder(t *testing.T, db *gorm.DB, userID uint, status models.OrderStatus, total float64) models.Order {
	t.Helper()
	order := models.Order{UserID: userID, Status: status, TotalAmount: total}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestProcessPaymentMovesOrderToPaid(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1)
	order := seedOrder(t, db, 1, models.OrderStatusPending, 99.90)

	r := newUserRouter(db, 1)
	w, body := doJSON(t, r, "POST", "/user/payments", map[string]interface{}{
		"orderId":       order.ID,
		"amount":        99.90,
		"method":        "upi",
		"transactionId": "txn-123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	paymentBody := body["payment"].(map[string]interface{})
	if paymentBody["status"] != models.PaymentStatusCompleted {
		t.Fatalf("payment status = %v", paymentBody["status"])
	}

	var got models.Order
	db.First(&got, order.ID)
	if got.Status != models.OrderStatusPaid {
		t.Fatalf("order status = %q, want paid", got.Status)
	}
}

func TestProcessPaymentRejectsAlreadyPaid(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1)
	order := seedOrder(t, db, 1, models.OrderStatusPaid, 50)

	r := newUserRouter(db, 1)
	w, body := doJSON(t, r, "POST", "/user/payments", map[string]interface{}{
		"orderId":       order.ID,
		"amount":        50,
		"method":        "card",
		"transactionId": "txn-456",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["error"] != "Order already paid" {
		t.Fatalf("error = %v", body["error"])
	}
	if n := countRows(t, db, &models.Payment{}); n != 0 {
		t.Fatalf("payments = %d, duplicate payment written", n)
	}
}

func TestProcessPaymentForeignOrderLooksAbsent(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1)
	other := models.User{ID: 2, Name: "Other", Email: "o@example.com", Phone: "9123456780", Status: models.StatusActive}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed user 2: %v", err)
	}
	order := seedOrder(t, db, 2, models.OrderStatusPending, 10)

	r := newUserRouter(db, 1)
	w, _ := doJSON(t, r, "POST", "/user/payments", map[string]interface{}{
		"orderId":       order.ID,
		"amount":        10,
		"method":        "cash",
		"transactionId": "txn-789",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestProcessPaymentRejectsUnknownMethod(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1)
	order := seedOrder(t, db, 1, models.OrderStatusPending, 10)

	r := newUserRouter(db, 1)
	w, _ := doJSON(t, r, "POST", "/user/payments", map[string]interface{}{
		"orderId":       order.ID,
		"amount":        10,
		"method":        "barter",
		"transactionId": "txn-000",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid method", w.Code)
	}
}
