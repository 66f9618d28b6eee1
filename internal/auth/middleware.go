package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type identityKey struct{}

// Sessions guards protected routes. It extracts the session cookie, verifies
// the token and re-checks the domain gate on every request, then attaches the
// identity to the request context.
//
// Failure contract:
//   - no cookie: 401 unauthorized
//   - verify failure: cookie cleared, 401 invalid_session
//   - domain gate failure: 403 domain_restricted, cookie kept — the token is
//     valid, just insufficiently privileged, and a later domain change could
//     re-admit it
func Sessions(codec *Codec, gate Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				denyJSON(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
				return
			}
			identity, err := codec.Verify(cookie.Value)
			if err != nil {
				ClearSessionCookie(w)
				denyJSON(w, http.StatusUnauthorized, "invalid_session", "Invalid session")
				return
			}
			if !gate.Authorize(identity) {
				denyJSON(w, http.StatusForbidden, "domain_restricted", "Access restricted to @"+gate.Domain()+" email addresses")
				return
			}
			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithIdentity stores the verified identity on the context.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity attached by Sessions, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(Identity)
	return v, ok
}

func denyJSON(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "error": message})
}
