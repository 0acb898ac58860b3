package models

import (
	"time"
)

type Budget struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Category  string    `gorm:"not null" json:"category"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Period    string    `gorm:"not null" json:"period"` // e.g. "monthly", "weekly", "yearly"
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
