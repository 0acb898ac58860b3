package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
)

// Open connects through dialector and brings the schema up to date.
// Driver errors are translated so duplicate keys surface as
// gorm.ErrDuplicatedKey regardless of the database in use.
func Open(dialector gorm.Dialector, log gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Budget{},
		&models.SavingsGoal{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

type healthStore struct {
	db *gorm.DB
}

func NewHealthStore(db *gorm.DB) *healthStore {
	return &healthStore{db: db}
}

func (s *healthStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errs.NewDatabaseError("ping", "failed to reach database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewDatabaseError("ping", "failed to reach database", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
