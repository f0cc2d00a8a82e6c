package api

import (
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
)

// DownloadHandler redirects to a signed attachment link for the latest output.
func DownloadHandler(svc port.SessionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		url, err := svc.DownloadLink(r.Context(), id)
		if err != nil {
			writeSessionError(w, err, "Could not generate download link")
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, url, http.StatusFound)
		logger.Infof(r.Context(), "✅  Redirected download of session #%s", id)
	}
}
