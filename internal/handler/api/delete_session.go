package api

import (
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
)

// DeleteSessionHandler deletes a session by ID.
func DeleteSessionHandler(svc port.SessionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteSession(r.Context(), id); err != nil {
			writeSessionError(w, err, "Failed to delete session")
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted session #%s", id)
	}
}
