package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/pkg/helpers"
)

type stubBudgetStore struct {
	budgets     []*models.Budget
	deactivated []uint
	err         error
}

func (s *stubBudgetStore) Create(_ context.Context, b *models.Budget) error {
	if s.err != nil {
		return s.err
	}
	b.ID = uint(len(s.budgets) + 1)
	s.budgets = append(s.budgets, b)
	return nil
}

func (s *stubBudgetStore) ListActive(_ context.Context, uid uint) ([]*models.Budget, error) {
	var out []*models.Budget
	for _, b := range s.budgets {
		if b.UserID == uid && b.IsActive {
			out = append(out, b)
		}
	}
	return out, s.err
}

func (s *stubBudgetStore) Deactivate(_ context.Context, uid, budgetID uint) error {
	if s.err != nil {
		return s.err
	}
	for _, b := range s.budgets {
		if b.ID == budgetID && b.UserID == uid {
			b.IsActive = false
			s.deactivated = append(s.deactivated, budgetID)
			return nil
		}
	}
	return errs.NewNotFoundError("Budget not found")
}

// memTransactions sums like the real store: owner, type, category and
// a [from, to) window.
type memTransactions struct {
	txs     []models.Transaction
	queries []dto.TransactionQuery
}

func (m *memTransactions) SumAmount(_ context.Context, uid uint, q dto.TransactionQuery) (float64, error) {
	m.queries = append(m.queries, q)
	var total float64
	for _, tx := range m.txs {
		if tx.UserID != uid {
			continue
		}
		if q.Type != nil && tx.Type != *q.Type {
			continue
		}
		if q.Category != nil && tx.Category != *q.Category {
			continue
		}
		if q.DateFrom != nil && tx.Date.Before(*q.DateFrom) {
			continue
		}
		if q.DateTo != nil && !tx.Date.Before(*q.DateTo) {
			continue
		}
		total += tx.Amount
	}
	return total, nil
}

var budgetNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func newBudgetFixture(txs ...models.Transaction) (*budgetService, *stubBudgetStore, *memTransactions) {
	budgets := &stubBudgetStore{}
	mem := &memTransactions{txs: txs}
	svc := NewBudgetService(budgets, mem)
	svc.now = func() time.Time { return budgetNow }
	return svc, budgets, mem
}

func expense(uid uint, amount float64, category string, date time.Time) models.Transaction {
	return models.Transaction{UserID: uid, Amount: amount, Type: models.TransactionExpense, Category: category, Date: date}
}

func TestBudgetServiceSpentCountsOnlyMatchingExpenses(t *testing.T) {
	day := budgetNow.Add(-time.Hour)
	svc, _, _ := newBudgetFixture(
		expense(1, 20, "Food", day),
		expense(1, 15, "Food", day),
		expense(1, 500, "Rent", day),
		models.Transaction{UserID: 1, Amount: 100, Type: models.TransactionIncome, Category: "Food", Date: day},
		expense(2, 99, "Food", day),
	)

	view, err := svc.Create(helpers.TestCtx(), 1, dto.CreateBudgetRequest{
		Category: "Food",
		Amount:   helpers.Ptr(200.0),
		Period:   "monthly",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Spent != 35 {
		t.Fatalf("spent = %v, want 35", view.Spent)
	}
	if view.Remaining != 165 {
		t.Fatalf("remaining = %v, want 165", view.Remaining)
	}
	if !view.IsActive || view.UserID != 1 {
		t.Fatalf("unexpected budget: %+v", view.Budget)
	}
}

func TestBudgetServiceSpentIsWindowedToCurrentPeriod(t *testing.T) {
	svc, _, _ := newBudgetFixture(
		expense(1, 10, "Fun", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		expense(1, 20, "Fun", time.Date(2024, 4, 30, 23, 59, 0, 0, time.UTC)),
		expense(1, 40, "Fun", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		expense(1, 80, "Fun", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	)
	ctx := helpers.TestCtx()

	tests := []struct {
		period    string
		wantSpent float64
	}{
		{period: "monthly", wantSpent: 10},
		{period: "yearly", wantSpent: 150},
		{period: "weekly", wantSpent: 0},
		{period: "fortnightly", wantSpent: 150},
	}

	for _, tt := range tests {
		view, err := svc.Create(ctx, 1, dto.CreateBudgetRequest{Category: "Fun", Amount: helpers.Ptr(100.0), Period: tt.period})
		if err != nil {
			t.Fatalf("%s: Create returned error: %v", tt.period, err)
		}
		if view.Spent != tt.wantSpent {
			t.Fatalf("%s: spent = %v, want %v", tt.period, view.Spent, tt.wantSpent)
		}
	}
}

func TestBudgetServiceUnknownPeriodHasNoWindow(t *testing.T) {
	svc, _, _ := newBudgetFixture()

	view, err := svc.Create(helpers.TestCtx(), 1, dto.CreateBudgetRequest{Category: "Fun", Amount: helpers.Ptr(1.0), Period: "someday"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.PeriodStart != nil || view.PeriodEnd != nil {
		t.Fatalf("expected no period window, got %v - %v", view.PeriodStart, view.PeriodEnd)
	}
}

func TestBudgetServiceRemainingRoundsToCents(t *testing.T) {
	day := budgetNow.Add(-time.Minute)
	svc, _, _ := newBudgetFixture(expense(1, 0.1, "Food", day), expense(1, 0.2, "Food", day))

	view, err := svc.Create(helpers.TestCtx(), 1, dto.CreateBudgetRequest{Category: "Food", Amount: helpers.Ptr(1.0), Period: "monthly"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Spent != 0.3 || view.Remaining != 0.7 {
		t.Fatalf("spent/remaining = %v/%v, want 0.3/0.7", view.Spent, view.Remaining)
	}
}

func TestBudgetServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateBudgetRequest
	}{
		{name: "missing category", req: dto.CreateBudgetRequest{Amount: helpers.Ptr(1.0), Period: "monthly"}},
		{name: "missing amount", req: dto.CreateBudgetRequest{Category: "Food", Period: "monthly"}},
		{name: "missing period", req: dto.CreateBudgetRequest{Category: "Food", Amount: helpers.Ptr(1.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, budgets, _ := newBudgetFixture()
			_, err := svc.Create(helpers.TestCtx(), 1, tt.req)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(budgets.budgets) != 0 {
				t.Fatalf("nothing should be stored")
			}
		})
	}
}

func TestBudgetServiceListAndDeactivate(t *testing.T) {
	svc, _, _ := newBudgetFixture(expense(1, 5, "Food", budgetNow))
	ctx := helpers.TestCtx()

	food, err := svc.Create(ctx, 1, dto.CreateBudgetRequest{Category: "Food", Amount: helpers.Ptr(50.0), Period: "monthly"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, 2, dto.CreateBudgetRequest{Category: "Food", Amount: helpers.Ptr(50.0), Period: "monthly"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	views, err := svc.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(views) != 1 || views[0].ID != food.ID || views[0].Spent != 5 {
		t.Fatalf("unexpected views: %+v", views)
	}

	if err := svc.Deactivate(ctx, 2, food.ID); err == nil {
		t.Fatalf("deactivating another user's budget should fail")
	}
	if err := svc.Deactivate(ctx, 1, food.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	views, err = svc.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("deactivated budget still listed: %+v", views)
	}
}
