package store

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
)

type transactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *transactionStore {
	return &transactionStore{db: db}
}

func (s *transactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

// List returns the user's transactions in insertion order.
func (s *transactionStore) List(ctx context.Context, uid uint, q dto.TransactionQuery) ([]*models.Transaction, error) {
	query := s.scope(ctx, uid, q).Order("id ASC").Offset(q.Skip)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	txs := make([]*models.Transaction, 0)
	if err := query.Find(&txs).Error; err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
	}
	return txs, nil
}

// SumAmount adds up the amounts matching q. Skip and Limit are ignored.
func (s *transactionStore) SumAmount(ctx context.Context, uid uint, q dto.TransactionQuery) (float64, error) {
	var total sql.NullFloat64
	row := s.scope(ctx, uid, q).Select("SUM(amount)").Row()
	if err := row.Scan(&total); err != nil {
		return 0, errs.NewDatabaseError("read", "failed to sum transactions", err)
	}
	return total.Float64, nil
}

func (s *transactionStore) scope(ctx context.Context, uid uint, q dto.TransactionQuery) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", uid)
	if q.Type != nil {
		query = query.Where("type = ?", *q.Type)
	}
	if q.Category != nil {
		query = query.Where("category = ?", *q.Category)
	}
	if q.DateFrom != nil {
		query = query.Where("date >= ?", q.DateFrom.UTC())
	}
	if q.DateTo != nil {
		query = query.Where("date < ?", q.DateTo.UTC())
	}
	return query
}
