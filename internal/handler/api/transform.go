package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
)

type CompressRequest struct {
	TargetSizeMB float64 `json:"target_size_mb" validate:"required,gt=0"`
}

// TransformResponse is returned by resize and compress. Warning is set when
// the output is usable but missed the requested size.
type TransformResponse struct {
	Session *port.GetSessionOutput `json:"session"`
	Output  *port.ResultOutput     `json:"output"`
	Warning string                 `json:"warning,omitempty"`
}

func ResizeHandler(svc port.SessionTransformer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.Resize(r.Context(), id)
		if err != nil {
			writeSessionError(w, err, "Could not resize image")
			return
		}

		respondTransform(w, out)
		logger.Infof(r.Context(), "✅  Resized session #%s to %dx%d", id, out.Image.Width, out.Image.Height)
	}
}

func CompressHandler(svc port.SessionTransformer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req CompressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if !validate(w, r, req) {
			return
		}

		out, err := svc.Compress(r.Context(), port.CompressInput{ID: id, TargetSizeMB: req.TargetSizeMB})
		if err != nil {
			writeSessionError(w, err, "Could not compress image")
			return
		}

		respondTransform(w, out)
		if out.Warning != nil {
			logger.Warnf(r.Context(), "⚠️  Compressed session #%s above target: %v", id, out.Warning)
			return
		}
		logger.Infof(r.Context(), "✅  Compressed session #%s to %.2f MB at quality %.2f", id, out.Image.EstimatedMB(), out.Image.Quality)
	}
}

func respondTransform(w http.ResponseWriter, out port.TransformOutput) {
	view := session.NewSessionView(out.Session)
	resp := TransformResponse{Session: view, Output: view.Output}
	if out.Warning != nil {
		resp.Warning = out.Warning.Error()
	}
	RespondJSON(w, http.StatusOK, resp)
}
