package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/internal/auth"
	"server/internal/providers/workos"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginRedirectsToProvider(t *testing.T) {
	app := newTestApp(&fakeIdentityProvider{}, nil)
	rec := httptest.NewRecorder()
	app.Login(rec, httptest.NewRequest(http.MethodGet, "http://app.example.com/login", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "https://auth.example.com/authorize") {
		t.Fatalf("Location = %q", location)
	}
	if !strings.Contains(location, "app.example.com/callback") {
		t.Fatalf("redirect URI not derived from request host: %q", location)
	}
}

func TestLoginPrefersConfiguredRedirectURI(t *testing.T) {
	app := newTestApp(&fakeIdentityProvider{}, nil)
	app.Config.WorkOSRedirectURI = "https://prod.example.com/callback"
	rec := httptest.NewRecorder()
	app.Login(rec, httptest.NewRequest(http.MethodGet, "http://localhost:8080/login", nil))

	if !strings.Contains(rec.Header().Get("Location"), "prod.example.com/callback") {
		t.Fatalf("Location = %q, want configured redirect URI", rec.Header().Get("Location"))
	}
}

func TestCallbackMissingCode(t *testing.T) {
	app := newTestApp(nil, nil)
	rec := httptest.NewRecorder()
	app.Callback(rec, httptest.NewRequest(http.MethodGet, "/callback", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if got := rec.Header().Get("Location"); got != "/?error=no_code" {
		t.Fatalf("Location = %q, want %q", got, "/?error=no_code")
	}
	if sessionCookie(t, rec) != nil {
		t.Fatalf("cookie set on failed callback")
	}
}

func TestCallbackExchangeFailure(t *testing.T) {
	app := newTestApp(&fakeIdentityProvider{
		authenticate: func(ctx context.Context, code string) (*workos.User, error) {
			return nil, errors.New("provider exploded: internal detail")
		},
	}, nil)
	rec := httptest.NewRecorder()
	app.Callback(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc", nil))

	// Generic indicator only; provider detail must not reach the client.
	if got := rec.Header().Get("Location"); got != "/?error=auth_failed" {
		t.Fatalf("Location = %q, want %q", got, "/?error=auth_failed")
	}
	if strings.Contains(rec.Body.String(), "internal detail") {
		t.Fatalf("provider error leaked to client: %q", rec.Body.String())
	}
	if sessionCookie(t, rec) != nil {
		t.Fatalf("cookie set on failed exchange")
	}
}

func TestCallbackDomainRestricted(t *testing.T) {
	app := newTestApp(&fakeIdentityProvider{
		authenticate: func(ctx context.Context, code string) (*workos.User, error) {
			return &workos.User{ID: "user_02", Email: "eve@example.com"}, nil
		},
	}, nil)
	rec := httptest.NewRecorder()
	app.Callback(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc", nil))

	if got := rec.Header().Get("Location"); got != "/?error=domain_restricted" {
		t.Fatalf("Location = %q, want %q", got, "/?error=domain_restricted")
	}
	if sessionCookie(t, rec) != nil {
		t.Fatalf("cookie set for disallowed domain")
	}
}

func TestCallbackSuccessSetsCookie(t *testing.T) {
	app := newTestApp(&fakeIdentityProvider{
		authenticate: func(ctx context.Context, code string) (*workos.User, error) {
			if code != "good" {
				t.Fatalf("code = %q", code)
			}
			return allowedUser, nil
		},
	}, nil)
	rec := httptest.NewRecorder()
	app.Callback(rec, httptest.NewRequest(http.MethodGet, "/callback?code=good", nil))

	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want /", got)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
		t.Fatalf("cookie attributes wrong: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatalf("Secure set outside production")
	}
	if cookie.MaxAge != int(app.Codec.TTL().Seconds()) {
		t.Fatalf("cookie MaxAge = %d, want token TTL", cookie.MaxAge)
	}
	identity, err := app.Codec.Verify(cookie.Value)
	if err != nil {
		t.Fatalf("cookie token does not verify: %v", err)
	}
	if identity.Email != allowedUser.Email || identity.FirstName != "Jane" {
		t.Fatalf("token identity = %+v", identity)
	}
}

func TestCallbackSecureCookieInProduction(t *testing.T) {
	app := newTestApp(&fakeIdentityProvider{
		authenticate: func(ctx context.Context, code string) (*workos.User, error) {
			return allowedUser, nil
		},
	}, nil)
	app.Config.AppEnv = "production"
	rec := httptest.NewRecorder()
	app.Callback(rec, httptest.NewRequest(http.MethodGet, "/callback?code=good", nil))

	cookie := sessionCookie(t, rec)
	if cookie == nil || !cookie.Secure {
		t.Fatalf("Secure flag not set in production: %+v", cookie)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newTestApp(nil, nil)
	rec := httptest.NewRecorder()
	app.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want /", got)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("session cookie not cleared: %+v", cookie)
	}
}

func TestMeReturnsIdentity(t *testing.T) {
	app := newTestApp(nil, nil)
	identity := auth.Identity{ID: "user_01", Email: "jane@fashionunited.com", FirstName: "Jane", LastName: "Doe"}
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r = r.WithContext(auth.ContextWithIdentity(r.Context(), identity))
	rec := httptest.NewRecorder()
	app.Me(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"jane@fashionunited.com"`) || !strings.Contains(body, `"user"`) {
		t.Fatalf("body = %q", body)
	}
}
