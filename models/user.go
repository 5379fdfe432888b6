package models

import "time"

const (
	StatusActive   = 1
	StatusInactive = 0
)

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `gorm:"not null" json:"phone"`
	// Password stays nil until the registration OTP is verified and the
	// user sets one. Never serialized.
	Password  *string   `json:"-"`
	Status    int       `gorm:"not null;default:1" json:"status"`
	Age       int       `json:"age"`
	DOB       time.Time `json:"dob"`
	TempToken bool      `gorm:"not null;default:false" json:"temp_token"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	Creator   *Admin    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	Otps      []Otp     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
