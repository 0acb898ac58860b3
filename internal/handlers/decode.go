package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-tracker/internal/dto"
	"github.com/GregMSThompson/finance-tracker/internal/errs"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

const maxBodyBytes = 1 << 20

// decodeJSON maps decoder failures to fixed client messages. The raw
// decoder error is only logged.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		logger.FromContext(r.Context()).Debug("request body rejected", "error", err)
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var (
		typeErr *json.UnmarshalTypeError
		dateErr *dto.DateTimeError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &dateErr):
		return errs.NewValidationError("dates must be an RFC 3339 timestamp, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return errs.NewValidationError("field " + typeErr.Field + " has the wrong type")
	case errors.As(err, &sizeErr):
		return errs.NewValidationError("request body is too large")
	default:
		return errs.NewValidationError("request body must be valid JSON")
	}
}

// idParam reads a positive integer path parameter.
func idParam(r *http.Request, key string) (uint, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewValidationError(key + " must be a positive integer")
	}
	return uint(id), nil
}
