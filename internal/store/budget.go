package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
)

type budgetStore struct {
	db *gorm.DB
}

func NewBudgetStore(db *gorm.DB) *budgetStore {
	return &budgetStore{db: db}
}

func (s *budgetStore) Create(ctx context.Context, b *models.Budget) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return errs.NewDatabaseError("create", "failed to create budget", err)
	}
	return nil
}

func (s *budgetStore) ListActive(ctx context.Context, uid uint) ([]*models.Budget, error) {
	budgets := make([]*models.Budget, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", uid, true).
		Order("id ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list budgets", err)
	}
	return budgets, nil
}

// Deactivate soft-deletes a budget owned by uid. Already inactive budgets
// are still found, so repeating the call succeeds.
func (s *budgetStore) Deactivate(ctx context.Context, uid, budgetID uint) error {
	var b models.Budget
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", budgetID, uid).First(&b).Error
	if err != nil {
		if isNotFound(err) {
			return errs.NewNotFoundError("Budget not found")
		}
		return errs.NewDatabaseError("read", "failed to get budget", err)
	}
	if !b.IsActive {
		return nil
	}
	err = s.db.WithContext(ctx).Model(&b).Update("is_active", false).Error
	if err != nil {
		return errs.NewDatabaseError("update", "failed to deactivate budget", err)
	}
	return nil
}
