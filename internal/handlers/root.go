package handlers

import (
	"net/http"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/response"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

type rootHandlers struct {
	ResponseHandler response.ResponseHandler
	Health          healthChecker
}

func NewRootHandlers(deps *Deps) *rootHandlers {
	return &rootHandlers{
		ResponseHandler: deps.ResponseHandler,
		Health:          deps.Health,
	}
}

func (h *rootHandlers) Welcome(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.MessageResponse{Message: "Welcome to Finance Tracker API"})
}

func (h *rootHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Health.Ping(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("health check failed", "error", err)
		h.ResponseHandler.WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "database unreachable")
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
