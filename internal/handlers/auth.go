package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/middleware"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/internal/response"
)

type authService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (dto.TokenResponse, error)
	CurrentActiveUser(ctx context.Context, token string) (*models.User, error)
}

type authHandlers struct {
	ResponseHandler response.ResponseHandler
	AuthSvc         authService
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{
		ResponseHandler: deps.ResponseHandler,
		AuthSvc:         deps.AuthSvc,
	}
}

// UserRoutes expects to be mounted behind BearerAuth.
func (h *authHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.Me)
	return r
}

func (h *authHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	user, err := h.AuthSvc.Register(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}

// Token implements the OAuth2 password grant: form-encoded username and
// password. The username field may hold an email or a username.
func (h *authHandlers) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("request body must be form-encoded"))
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("username and password are required"))
		return
	}

	token, err := h.AuthSvc.Login(r.Context(), username, password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, token)
}

func (h *authHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewUnauthenticatedError("Not authenticated"))
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}
