package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/fhuszti/resizer-ms-go/internal/validation"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

// validate writes the 400 field map and returns false when req is invalid.
func validate(w http.ResponseWriter, r *http.Request, req any) bool {
	errs := validation.ValidateStruct(req)
	if errs == nil {
		return true
	}
	errsJSON, err := validation.ErrorsToJson(errs)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
		return false
	}
	RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
	logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
	return false
}

// writeSessionError maps use-case failures to a status; anything unknown is
// a 500 carrying fallback as message.
func writeSessionError(w http.ResponseWriter, err error, fallback string) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, "Session not found", err)
	case errors.Is(err, session.ErrNoOutput):
		WriteError(w, http.StatusNotFound, "Nothing to download yet, resize or compress first", err)
	case errors.Is(err, session.ErrPresetNotFound):
		WriteError(w, http.StatusNotFound, "Preset not found", err)
	case errors.Is(err, session.ErrObjectNotFound):
		WriteError(w, http.StatusNotFound, "Stored image not found", err)
	case errors.Is(err, session.ErrFileTooLarge), errors.As(err, &tooBig):
		WriteError(w, http.StatusRequestEntityTooLarge, "File too large", err)
	case errors.Is(err, session.ErrDecodeFailure):
		WriteError(w, http.StatusUnprocessableEntity, "File is not a decodable image", err)
	case errors.Is(err, session.ErrInvalidDimensions):
		WriteError(w, http.StatusUnprocessableEntity, "Invalid dimensions", err)
	case errors.Is(err, session.ErrInvalidTargetSize):
		WriteError(w, http.StatusUnprocessableEntity, "Target size must be a positive number of MB", err)
	default:
		WriteError(w, http.StatusInternalServerError, fallback, err)
	}
}
