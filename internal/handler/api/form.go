package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/fhuszti/resizer-ms-go/internal/validation"
	"github.com/go-chi/chi/v5"
)

// UpdateFormRequest carries the edited form fields. Absent fields are left
// alone; 0 clears a dimension.
type UpdateFormRequest struct {
	Width     *int  `json:"width"      validate:"omitempty,gte=0"`
	Height    *int  `json:"height"     validate:"omitempty,gte=0"`
	LockRatio *bool `json:"lock_ratio"`
}

type ApplyPresetRequest struct {
	Preset string `json:"preset" validate:"required,preset"`
}

func UpdateFormHandler(svc port.FormEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req UpdateFormRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if !validate(w, r, req) {
			return
		}

		sess, err := svc.UpdateForm(r.Context(), port.UpdateFormInput{
			ID:        id,
			Width:     req.Width,
			Height:    req.Height,
			LockRatio: req.LockRatio,
		})
		if err != nil {
			writeSessionError(w, err, "Could not update form")
			return
		}

		RespondJSON(w, http.StatusOK, session.NewSessionView(sess))
		logger.Infof(r.Context(), "✅  Updated form of session #%s to %dx%d (lock=%v)", id, sess.TargetWidth, sess.TargetHeight, sess.LockRatio)
	}
}

func ApplyPresetHandler(svc port.FormEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		req := ApplyPresetRequest{Preset: chi.URLParam(r, "preset")}
		if err := validation.ValidateStruct(req); err != nil {
			WriteError(w, http.StatusNotFound, "Preset not found", err)
			return
		}

		sess, err := svc.ApplyPreset(r.Context(), id, req.Preset)
		if err != nil {
			writeSessionError(w, err, "Could not apply preset")
			return
		}

		RespondJSON(w, http.StatusOK, session.NewSessionView(sess))
		logger.Infof(r.Context(), "✅  Applied preset %q to session #%s", req.Preset, id)
	}
}
