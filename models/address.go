package models

import "time"

type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Area      string    `gorm:"not null" json:"area"`
	Division  string    `gorm:"not null" json:"division"`
	City      string    `gorm:"not null" json:"city"`
	District  string    `gorm:"not null" json:"district"`
	Pincode   string    `gorm:"not null" json:"pincode"`
	State     string    `gorm:"not null" json:"state"`
	Country   string    `gorm:"not null;default:'India'" json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
