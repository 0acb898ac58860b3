package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
)

type savingsGoalStore struct {
	db *gorm.DB
}

func NewSavingsGoalStore(db *gorm.DB) *savingsGoalStore {
	return &savingsGoalStore{db: db}
}

func (s *savingsGoalStore) Create(ctx context.Context, g *models.SavingsGoal) error {
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return errs.NewDatabaseError("create", "failed to create savings goal", err)
	}
	return nil
}

func (s *savingsGoalStore) ListActive(ctx context.Context, uid uint) ([]*models.SavingsGoal, error) {
	goals := make([]*models.SavingsGoal, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", uid, true).
		Order("id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list savings goals", err)
	}
	return goals, nil
}

func (s *savingsGoalStore) Deactivate(ctx context.Context, uid, goalID uint) error {
	var g models.SavingsGoal
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, uid).First(&g).Error
	if err != nil {
		if isNotFound(err) {
			return errs.NewNotFoundError("Savings goal not found")
		}
		return errs.NewDatabaseError("read", "failed to get savings goal", err)
	}
	if !g.IsActive {
		return nil
	}
	err = s.db.WithContext(ctx).Model(&g).Update("is_active", false).Error
	if err != nil {
		return errs.NewDatabaseError("update", "failed to deactivate savings goal", err)
	}
	return nil
}
