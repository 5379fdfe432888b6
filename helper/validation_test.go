package helper

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type phoneBody struct {
	Phone   string `json:"phone" binding:"required,phone10"`
	Pincode string `json:"pincode" binding:"required,pincode6"`
}

func bindPhoneBody(t *testing.T, payload interface{}) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	var body phoneBody
	return w, BindJSON(c, &body)
}

func TestBindJSONAcceptsValidFields(t *testing.T) {
	_, ok := bindPhoneBody(t, map[string]string{"phone": "9876543210", "pincode": "682016"})
	if !ok {
		t.Fatal("valid body rejected")
	}
}

func TestBindJSONReportsFieldErrors(t *testing.T) {
	w, ok := bindPhoneBody(t, map[string]string{"phone": "98765", "pincode": "abc"})
	if ok {
		t.Fatal("invalid body accepted")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body struct {
		Errors []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("field errors = %d, want 2: %+v", len(body.Errors), body.Errors)
	}
}

func TestBindJSONRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")

	var body phoneBody
	if BindJSON(c, &body) {
		t.Fatal("malformed JSON accepted")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
