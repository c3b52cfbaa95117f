package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nadimk/schoolhub/internal/models"
)

// errorResponse is the envelope for every failure.
type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps the domain error taxonomy to HTTP status codes. Every
// error body carries the message verbatim so the caller can correct the
// input.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var (
		ve *models.ValidationError
		de *models.DuplicateError
		ne *models.NotFoundError
		fe *models.FormatError
	)
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &de):
		status = http.StatusConflict
	case errors.As(err, &ne):
		status = http.StatusNotFound
	case errors.As(err, &fe):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Status: "error", Error: err.Error()})
}

// decode reads a JSON body into v, rejecting empty bodies with a clear
// message.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &models.ValidationError{Field: "body", Value: "", Reason: "invalid or empty JSON request body"}
	}
	return nil
}
