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

type savingsGoalGSStore interface {
	Create(ctx context.Context, g *models.SavingsGoal) error
	ListActive(ctx context.Context, uid uint) ([]*models.SavingsGoal, error)
	Deactivate(ctx context.Context, uid, goalID uint) error
}

type savingsGoalService struct {
	store savingsGoalGSStore
	now   func() time.Time
}

func NewSavingsGoalService(store savingsGoalGSStore) *savingsGoalService {
	return &savingsGoalService{store: store, now: time.Now}
}

// Create starts a goal at zero. Nothing in the API moves CurrentAmount yet.
func (s *savingsGoalService) Create(ctx context.Context, uid uint, req dto.CreateSavingsGoalRequest) (dto.SavingsGoalView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.SavingsGoalView{}, errs.NewValidationError("name is required")
	}
	if req.TargetAmount == nil {
		return dto.SavingsGoalView{}, errs.NewValidationError("target_amount is required")
	}
	if req.Deadline == nil || req.Deadline.IsZero() {
		return dto.SavingsGoalView{}, errs.NewValidationError("deadline is required")
	}

	g := &models.SavingsGoal{
		UserID:       uid,
		Name:         name,
		TargetAmount: *req.TargetAmount,
		Deadline:     req.Deadline.UTC(),
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Create(ctx, g); err != nil {
		return dto.SavingsGoalView{}, err
	}

	logger.FromContext(ctx).Info("savings goal created", "goal_id", g.ID)
	return goalView(g), nil
}

func (s *savingsGoalService) ListActive(ctx context.Context, uid uint) ([]dto.SavingsGoalView, error) {
	goals, err := s.store.ListActive(ctx, uid)
	if err != nil {
		return nil, err
	}
	views := make([]dto.SavingsGoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView(g))
	}
	return views, nil
}

func (s *savingsGoalService) Deactivate(ctx context.Context, uid, goalID uint) error {
	if err := s.store.Deactivate(ctx, uid, goalID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("savings goal deactivated", "goal_id", goalID)
	return nil
}

func goalView(g *models.SavingsGoal) dto.SavingsGoalView {
	v := dto.SavingsGoalView{SavingsGoal: *g}
	if g.TargetAmount == 0 {
		return v
	}
	v.Progress = decimal.NewFromFloat(g.CurrentAmount).
		Div(decimal.NewFromFloat(g.TargetAmount)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
	return v
}
