package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
)

func GetSessionHandler(renderer port.HTTPRenderer, svc port.SessionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderGetSession(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				WriteError(w, http.StatusNotFound, "Session not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get session details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "private, max-age=0")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached session #%s", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for session #%s", id)
	}
}
