package models

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"not null" json:"-"`
	FullName       *string   `json:"full_name"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`

	Transactions []Transaction `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Budgets      []Budget      `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	SavingsGoals []SavingsGoal `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
