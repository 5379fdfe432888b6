package models

import "time"

// Otp rows are append-only; issuing a new code for a phone marks every
// earlier unverified row verified, so at most one code is live per phone.
type Otp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Phone     string    `gorm:"not null;index" json:"phone"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Code      string    `gorm:"column:otp;not null" json:"-"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
