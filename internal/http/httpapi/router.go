package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/auth"
	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter wires the public handshake routes, the protected API group and
// the SPA fallback.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
	)
	if len(app.Config.CORSOrigins) > 0 {
		r.Use(middleware.CORS(app.Config.CORSOrigins))
	}

	// Health
	r.Get("/healthz", app.Health)

	// Auth handshake (unprotected)
	r.Get("/login", app.Login)
	r.Get("/callback", app.Callback)
	r.Get("/logout", app.Logout)

	// Protected API
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Sessions(app.Codec, app.Gate))
		r.Get("/me", app.Me)
		r.Post("/research", app.Research)
		r.Post("/generate-image", app.GenerateImage)
		r.Post("/edit-image", app.EditImage)
	})

	// Client application fallback for any non-API path.
	r.NotFound(app.SPA)

	return r
}
