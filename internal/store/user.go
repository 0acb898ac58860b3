package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
)

type userStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *userStore {
	return &userStore{db: db}
}

// CreateUser relies on the unique indexes on email and username; a lost
// check-then-insert race still comes back as AlreadyExistsError.
func (s *userStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isDuplicate(err) {
			return errs.NewAlreadyExistsError("Email or username already registered")
		}
		return errs.NewDatabaseError("create", "failed to create user", err)
	}
	return nil
}

func (s *userStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getBy(ctx, "email = ?", email)
}

func (s *userStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getBy(ctx, "username = ?", username)
}

func (s *userStore) getBy(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("user not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get user", err)
	}
	return &user, nil
}
