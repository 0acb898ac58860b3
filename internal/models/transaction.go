package models

import (
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is immutable once written. Amount is stored as given; the
// direction of money comes from Type, not from the sign.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index:idx_transactions_spent,priority:1" json:"user_id"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"type:varchar(16);not null;index:idx_transactions_spent,priority:2" json:"type"`
	Category    string          `gorm:"not null;index:idx_transactions_spent,priority:3" json:"category"`
	Description string          `gorm:"not null;default:''" json:"description"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_spent,priority:4" json:"date"`
}
