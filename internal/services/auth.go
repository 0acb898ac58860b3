package services

import (
	"context"
	"errors"
	"time"

	"github.com/GregMSThompson/finance-tracker/internal/crypto"
	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

type tokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(token string) (string, error)
	TTL() time.Duration
}

// authService is stateless per request: a token is valid, expired, invalid
// or unresolvable purely from its contents and the user table.
type authService struct {
	users  *userService
	tokens tokenIssuer
}

func NewAuthService(users *userService, tokens tokenIssuer) *authService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return s.users.Register(ctx, req)
}

// Login issues a bearer token whose subject is the user's email.
func (s *authService) Login(ctx context.Context, identifier, password string) (dto.TokenResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.Authenticate(ctx, identifier, password)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	if user == nil {
		log.Info("login rejected")
		return dto.TokenResponse{}, errs.NewInvalidCredentialsError()
	}

	ttl := s.tokens.TTL()
	token, err := s.tokens.Issue(user.Email, ttl)
	if err != nil {
		log.Error("failed to issue token", "error", err)
		return dto.TokenResponse{}, err
	}

	log.Info("login succeeded", "user_id", user.ID)
	return dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl / time.Second),
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return nil, errs.NewUnauthenticatedError("Token has expired")
		}
		return nil, errs.NewUnauthenticatedError("Could not validate credentials")
	}

	user, err := s.users.GetByEmail(ctx, subject)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewUnauthenticatedError("Could not validate credentials")
		}
		return nil, err
	}
	return user, nil
}

// CurrentActiveUser is the check every protected route uses.
func (s *authService) CurrentActiveUser(ctx context.Context, token string) (*models.User, error) {
	user, err := s.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.NewInactiveUserError()
	}
	return user, nil
}
