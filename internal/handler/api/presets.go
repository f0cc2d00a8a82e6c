package api

import (
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/model"
)

// ListPresetsHandler returns the one-click document sizes.
func ListPresetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		RespondJSON(w, http.StatusOK, model.Presets)
	}
}
