package dto

import (
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/models"
)

const (
	DefaultTransactionLimit = 100
	MaxTransactionLimit     = 1000
)

type CreateTransactionRequest struct {
	Amount      *float64               `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        *DateTime              `json:"date,omitempty"`
}

// TransactionQuery filters a user's transactions. DateFrom is inclusive,
// DateTo exclusive. Limit 0 means no limit.
type TransactionQuery struct {
	Type     *models.TransactionType
	Category *string
	DateFrom *time.Time
	DateTo   *time.Time
	Skip     int
	Limit    int
}
