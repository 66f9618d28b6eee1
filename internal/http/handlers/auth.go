package handlers

import (
	"net/http"

	"server/internal/auth"
)

// Login redirects the browser to the AuthKit authorization URL. No local
// state is created; the exchange continues at Callback.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, a.Identity.AuthorizationURL(a.redirectURI(r)), http.StatusFound)
}

// Callback completes the handshake: it exchanges the code for a profile,
// applies the domain gate before any token exists, then issues the session
// cookie. Every failure redirects to the root with an error indicator and no
// cookie; provider error detail stays in the server log.
func (a *App) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/?error=no_code", http.StatusFound)
		return
	}

	user, err := a.Identity.AuthenticateWithCode(r.Context(), code)
	if err != nil {
		a.Logger.Error().Err(err).Msg("callback: code exchange failed")
		http.Redirect(w, r, "/?error=auth_failed", http.StatusFound)
		return
	}

	identity := auth.Identity{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if !a.Gate.Authorize(identity) {
		http.Redirect(w, r, "/?error=domain_restricted", http.StatusFound)
		return
	}

	token, err := a.Codec.Issue(identity)
	if err != nil {
		a.Logger.Error().Err(err).Msg("callback: token issue failed")
		http.Redirect(w, r, "/?error=auth_failed", http.StatusFound)
		return
	}

	auth.SetSessionCookie(w, token, a.Codec.TTL(), a.Config.Production())
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session cookie unconditionally. There is no server-side
// session to invalidate.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Me returns the identity of the current session.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": identity})
}

func (a *App) redirectURI(r *http.Request) string {
	if a.Config.WorkOSRedirectURI != "" {
		return a.Config.WorkOSRedirectURI
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/callback"
}
