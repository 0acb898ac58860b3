package handlers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/finance-tracker/internal/response"
)

type healthChecker interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AuthSvc         authService
	TransactionSvc  transactionService
	BudgetSvc       budgetService
	SavingsGoalSvc  savingsGoalService
	Health          healthChecker

	FrontendURL        string
	LoginRatePerMinute int
	LoginRateBurst     int
}
