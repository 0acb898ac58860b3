package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/middleware"
	"github.com/GregMSThompson/finance-tracker/internal/response"
)

type savingsGoalService interface {
	Create(ctx context.Context, uid uint, req dto.CreateSavingsGoalRequest) (dto.SavingsGoalView, error)
	ListActive(ctx context.Context, uid uint) ([]dto.SavingsGoalView, error)
	Deactivate(ctx context.Context, uid, goalID uint) error
}

type savingsGoalHandlers struct {
	ResponseHandler response.ResponseHandler
	SavingsGoalSvc  savingsGoalService
}

func NewSavingsGoalHandlers(deps *Deps) *savingsGoalHandlers {
	return &savingsGoalHandlers{
		ResponseHandler: deps.ResponseHandler,
		SavingsGoalSvc:  deps.SavingsGoalSvc,
	}
}

func (h *savingsGoalHandlers) SavingsGoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateSavingsGoal)
	r.Get("/", h.ListSavingsGoals)
	r.Delete("/{goalID}", h.DeleteSavingsGoal)
	return r
}

func (h *savingsGoalHandlers) CreateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSavingsGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	goal, err := h.SavingsGoalSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *savingsGoalHandlers) ListSavingsGoals(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	goals, err := h.SavingsGoalSvc.ListActive(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goals)
}

func (h *savingsGoalHandlers) DeleteSavingsGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := idParam(r, "goalID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	if err := h.SavingsGoalSvc.Deactivate(r.Context(), uid, goalID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.MessageResponse{Message: "Savings goal deactivated successfully"})
}
