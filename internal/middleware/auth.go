package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/internal/response"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

type authenticator interface {
	CurrentActiveUser(ctx context.Context, token string) (*models.User, error)
}

type Middleware struct {
	Auth            authenticator
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(auth authenticator, rh response.ResponseHandler) *Middleware {
	return &Middleware{Auth: auth, ResponseHandler: rh}
}

// context key
type contextKey string

const UserKey contextKey = "user"

// BearerAuth resolves the Authorization header to an active user and
// stores it on the request context.
func (m *Middleware) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthenticatedError("Not authenticated"))
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthenticatedError("Not authenticated"))
			return
		}

		user, err := m.Auth.CurrentActiveUser(r.Context(), parts[1])
		if err != nil {
			m.ResponseHandler.HandleError(w, r, err)
			return
		}

		_, ctx := logger.With(r.Context(), "user_id", user.ID)
		ctx = context.WithValue(ctx, UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the user set by BearerAuth, or nil outside it.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

// Helper to extract the user id
func UID(ctx context.Context) uint {
	if user := CurrentUser(ctx); user != nil {
		return user.ID
	}
	return 0
}
