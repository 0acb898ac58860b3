package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/internal/middleware"
	"github.com/GregMSThompson/finance-tracker/internal/models"
	"github.com/GregMSThompson/finance-tracker/internal/response"
)

type transactionService interface {
	Create(ctx context.Context, uid uint, req dto.CreateTransactionRequest) (*models.Transaction, error)
	List(ctx context.Context, uid uint, q dto.TransactionQuery) ([]*models.Transaction, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateTransaction)
	r.Get("/", h.ListTransactions)
	return r
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q, err := parseTransactionQuery(r.URL.Query())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	txs, err := h.TransactionSvc.List(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

// parseTransactionQuery reads skip, limit, type, category, date_from and
// date_to. Dates use the dto.DateTimeLayouts forms.
func parseTransactionQuery(values url.Values) (dto.TransactionQuery, error) {
	q := dto.TransactionQuery{Limit: dto.DefaultTransactionLimit}

	var err error
	if q.Skip, err = intParam(values, "skip", 0); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(values, "limit", dto.DefaultTransactionLimit); err != nil {
		return q, err
	}
	if v := values.Get("type"); v != "" {
		t := models.TransactionType(v)
		q.Type = &t
	}
	if v := values.Get("category"); v != "" {
		q.Category = &v
	}
	if q.DateFrom, err = dateParam(values, "date_from"); err != nil {
		return q, err
	}
	if q.DateTo, err = dateParam(values, "date_to"); err != nil {
		return q, err
	}
	return q, nil
}

func intParam(values url.Values, key string, fallback int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(key + " must be an integer")
	}
	return n, nil
}

func dateParam(values url.Values, key string) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseDateTime(raw)
	if err != nil {
		return nil, errs.NewValidationError(key + " must be an RFC 3339 timestamp, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD date")
	}
	return &t, nil
}
