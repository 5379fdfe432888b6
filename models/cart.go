package models

import "time"

// Cart is one line item; at most one row exists per (user, product) pair.
// Repeat adds merge into the existing row's quantity.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_carts_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_carts_user_product,unique" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	AddressID *uint     `json:"address_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
