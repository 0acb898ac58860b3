package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

type budgetBSStore interface {
	Create(ctx context.Context, b *models.Budget) error
	ListActive(ctx context.Context, uid uint) ([]*models.Budget, error)
	Deactivate(ctx context.Context, uid, budgetID uint) error
}

type transactionSumStore interface {
	SumAmount(ctx context.Context, uid uint, q dto.TransactionQuery) (float64, error)
}

type budgetService struct {
	budgets budgetBSStore
	txs     transactionSumStore
	now     func() time.Time
}

func NewBudgetService(budgets budgetBSStore, txs transactionSumStore) *budgetService {
	return &budgetService{budgets: budgets, txs: txs, now: time.Now}
}

func (s *budgetService) Create(ctx context.Context, uid uint, req dto.CreateBudgetRequest) (dto.BudgetView, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return dto.BudgetView{}, errs.NewValidationError("category is required")
	}
	if req.Amount == nil {
		return dto.BudgetView{}, errs.NewValidationError("amount is required")
	}
	period := strings.TrimSpace(req.Period)
	if period == "" {
		return dto.BudgetView{}, errs.NewValidationError("period is required")
	}

	b := &models.Budget{
		UserID:    uid,
		Category:  category,
		Amount:    *req.Amount,
		Period:    period,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.budgets.Create(ctx, b); err != nil {
		return dto.BudgetView{}, err
	}

	logger.FromContext(ctx).Info("budget created", "budget_id", b.ID, "category", b.Category)
	return s.view(ctx, b, s.now())
}

func (s *budgetService) ListActive(ctx context.Context, uid uint) ([]dto.BudgetView, error) {
	budgets, err := s.budgets.ListActive(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]dto.BudgetView, 0, len(budgets))
	for _, b := range budgets {
		v, err := s.view(ctx, b, now)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *budgetService) Deactivate(ctx context.Context, uid, budgetID uint) error {
	if err := s.budgets.Deactivate(ctx, uid, budgetID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("budget deactivated", "budget_id", budgetID)
	return nil
}

// view computes spent: the sum of the owner's expense transactions in the
// budget's category within the current period instance. Budgets with an
// unrecognised period are summed over all time.
func (s *budgetService) view(ctx context.Context, b *models.Budget, now time.Time) (dto.BudgetView, error) {
	expense := models.TransactionExpense
	category := b.Category
	q := dto.TransactionQuery{Type: &expense, Category: &category}

	v := dto.BudgetView{Budget: *b}
	if start, end, ok := currentPeriod(b.Period, now); ok {
		q.DateFrom, q.DateTo = &start, &end
		v.PeriodStart, v.PeriodEnd = &start, &end
	}

	total, err := s.txs.SumAmount(ctx, b.UserID, q)
	if err != nil {
		return dto.BudgetView{}, err
	}

	spent := decimal.NewFromFloat(total).Round(2)
	v.Spent = spent.InexactFloat64()
	v.Remaining = decimal.NewFromFloat(b.Amount).Sub(spent).Round(2).InexactFloat64()
	return v, nil
}
