package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/crypto"
	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/pkg/helpers"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type passwordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type userService struct {
	Store  userUSStore
	Hasher passwordHasher

	// decoy is verified against when no user matches, so a failed login
	// costs the same whether or not the account exists.
	decoyOnce sync.Once
	decoy     string
}

func NewUserService(store userUSStore, hasher passwordHasher) *userService {
	return &userService{
		Store:  store,
		Hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, errs.NewValidationError("username is required")
	}
	if req.Password == "" {
		return nil, errs.NewValidationError("password is required")
	}
	if len(req.Password) > crypto.MaxPasswordBytes {
		return nil, errs.NewValidationError("password must be at most 72 bytes")
	}

	// Registration deliberately reveals a taken email; login never does.
	if err := s.ensureFree(ctx, s.Store.GetUserByEmail, email, "Email already registered"); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.Store.GetUserByUsername, username, "Username already taken"); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:          email,
		Username:       username,
		FullName:       helpers.TrimmedOrNil(req.FullName),
		HashedPassword: hash,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Warn("failed to create user in store", "error", err)
		return nil, err
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate returns the user matching identifier and password, or nil
// when either is wrong. identifier is tried as an email first, then as a
// username. Only storage failures produce an error.
func (s *userService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, nil
	}

	user, err := s.Store.GetUserByEmail(ctx, strings.ToLower(identifier))
	if isNotFound(err) {
		user, err = s.Store.GetUserByUsername(ctx, identifier)
	}
	if isNotFound(err) {
		s.Hasher.Verify(password, s.decoyHash())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !s.Hasher.Verify(password, user.HashedPassword) {
		return nil, nil
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.Store.GetUserByEmail(ctx, email)
}

func (s *userService) ensureFree(ctx context.Context, get func(context.Context, string) (*models.User, error), key, msg string) error {
	_, err := get(ctx, key)
	switch {
	case err == nil:
		return errs.NewAlreadyExistsError(msg)
	case isNotFound(err):
		return nil
	default:
		return err
	}
}

func (s *userService) decoyHash() string {
	s.decoyOnce.Do(func() {
		h, err := s.Hasher.Hash("decoy-password-for-unknown-users")
		if err == nil {
			s.decoy = h
		}
	})
	return s.decoy
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", errs.NewValidationError("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.NewValidationError("email is not a valid address")
	}
	return email, nil
}

func isNotFound(err error) bool {
	var nf *errs.NotFoundError
	return errors.As(err, &nf)
}
