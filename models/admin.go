package models

import "time"

type AdminType string

const (
	AdminTypeRegular AdminType = "ADMIN"
	AdminTypeSuper   AdminType = "SUPER_ADMIN"
)

type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `gorm:"not null" json:"-"`
	Type      AdminType `gorm:"type:VARCHAR(20);not null;default:'ADMIN'" json:"type"`
	Status    int       `gorm:"not null;default:1" json:"status"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
