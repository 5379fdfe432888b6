package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
)

const (
	PaymentStatusSuccess   = "SUCCESS"
	PaymentStatusCompleted = "completed"
)

type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       uint          `gorm:"not null;index" json:"order_id"`
	Order         *Order        `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Method        PaymentMethod `gorm:"type:VARCHAR(10)" json:"method"`
	TransactionID string        `json:"transaction_id"`
	Status        string        `gorm:"not null;default:'SUCCESS'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
