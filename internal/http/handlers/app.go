package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"server/internal/auth"
	"server/internal/infra"
	"server/internal/pipeline"
	"server/internal/providers/workos"
)

// IdentityProvider is the slice of the WorkOS client the auth handlers use.
type IdentityProvider interface {
	AuthorizationURL(redirectURI string) string
	AuthenticateWithCode(ctx context.Context, code string) (*workos.User, error)
}

// App is the handler container. Everything it holds is constructed once at
// startup and read-only afterwards.
type App struct {
	Config   *infra.Config
	Logger   infra.Logger
	Codec    *auth.Codec
	Gate     auth.Gate
	Identity IdentityProvider
	Pipeline *pipeline.Service
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "error": message})
}
