package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

type transactionTSStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context, uid uint, q dto.TransactionQuery) ([]*models.Transaction, error)
}

type transactionService struct {
	store transactionTSStore
	now   func() time.Time
}

func NewTransactionService(store transactionTSStore) *transactionService {
	return &transactionService{store: store, now: time.Now}
}

// Create records the transaction as given. The amount's sign is not checked
// against its type.
func (s *transactionService) Create(ctx context.Context, uid uint, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Amount == nil {
		return nil, errs.NewValidationError("amount is required")
	}
	if !req.Type.Valid() {
		return nil, errs.NewValidationError("type must be one of: income, expense")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, errs.NewValidationError("category is required")
	}

	date := s.now()
	if req.Date != nil && !req.Date.IsZero() {
		date = req.Date.Time
	}

	tx := &models.Transaction{
		UserID:      uid,
		Amount:      *req.Amount,
		Type:        req.Type,
		Category:    category,
		Description: req.Description,
		Date:        date.UTC(),
	}
	if err := s.store.Create(ctx, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction recorded", "transaction_id", tx.ID, "type", tx.Type)
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, uid uint, q dto.TransactionQuery) ([]*models.Transaction, error) {
	if q.Skip < 0 {
		return nil, errs.NewValidationError("skip must not be negative")
	}
	if q.Limit < 0 {
		return nil, errs.NewValidationError("limit must not be negative")
	}
	if q.Type != nil && !q.Type.Valid() {
		return nil, errs.NewValidationError("type must be one of: income, expense")
	}
	if q.Limit == 0 {
		return []*models.Transaction{}, nil
	}
	if q.Limit > dto.MaxTransactionLimit {
		q.Limit = dto.MaxTransactionLimit
	}
	return s.store.List(ctx, uid, q)
}
