package dto

import (
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/models"
)

type CreateBudgetRequest struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
	Period   string   `json:"period"`
}

// BudgetView is a budget annotated with what has been spent against it in
// the current period instance. PeriodStart/PeriodEnd are nil for budgets
// whose period is not a recognised window.
type BudgetView struct {
	models.Budget
	Spent       float64    `json:"spent"`
	Remaining   float64    `json:"remaining"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
}
