package handler

import (
	"github.com/fhuszti/resizer-ms-go/internal/handler/api"
	cMiddleware "github.com/fhuszti/resizer-ms-go/internal/middleware"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services groups what the HTTP API needs.
type Services struct {
	Uploader    port.SessionUploader
	Editor      port.FormEditor
	Transformer port.SessionTransformer
	Getter      port.SessionGetter
	Deleter     port.SessionDeleter
	Renderer    port.HTTPRenderer

	MaxUploadSize int64
	JWTPublicKey  string
}

// NewRouter mounts every route. Only the preset list is served without a
// bearer token.
func NewRouter(svc Services) (*chi.Mux, error) {
	auth, err := cMiddleware.WithBearerAuth(svc.JWTPublicKey)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	r.Get("/presets", api.ListPresetsHandler())

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/sessions", api.CreateSessionHandler(svc.Uploader, svc.MaxUploadSize))

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(cMiddleware.WithSessionID())

			r.Get("/", api.GetSessionHandler(svc.Renderer, svc.Getter))
			r.Delete("/", api.DeleteSessionHandler(svc.Deleter))
			r.Put("/source", api.ReplaceSourceHandler(svc.Uploader, svc.MaxUploadSize))
			r.Patch("/form", api.UpdateFormHandler(svc.Editor))
			r.Post("/presets/{preset}", api.ApplyPresetHandler(svc.Editor))
			r.Post("/resize", api.ResizeHandler(svc.Transformer))
			r.Post("/compress", api.CompressHandler(svc.Transformer))
			r.Get("/download", api.DownloadHandler(svc.Getter))
		})
	})

	return r, nil
}
