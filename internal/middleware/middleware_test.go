package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stellaris-server/internal/auth"
	"stellaris-server/internal/shared/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func newAuth(t *testing.T) (*Auth, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager(config.AuthConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		TokenExpiration: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return NewAuth(tokens), tokens
}

func TestRequireAdmin(t *testing.T) {
	a, tokens := newAuth(t)
	admin, _ := tokens.Generate("root", auth.RoleAdmin)
	viewer, _ := tokens.Generate("guest", auth.RoleViewer)

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"malformed header", "Token " + admin, "", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", "", http.StatusUnauthorized},
		{"viewer", "Bearer " + viewer, "", http.StatusForbidden},
		{"admin header", "Bearer " + admin, "", http.StatusNoContent},
		{"admin cookie", "", admin, http.StatusNoContent},
	}

	handler := a.RequireAdmin(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/galaxies", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: authCookie, Value: tt.cookie})
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestJWTMiddlewareStoresClaims(t *testing.T) {
	a, tokens := newAuth(t)
	token, _ := tokens.Generate("guest", auth.RoleViewer)

	var seen *auth.Claims
	handler := a.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserFromContext(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen == nil || seen.Username != "guest" {
		t.Errorf("claims = %+v", seen)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2})
	handler := rl.Middleware(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("other client limited: %d", rec.Code)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, RequestsPerSecond: 0.001, BurstSize: 0})
	rec := httptest.NewRecorder()
	rl.Middleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, BurstSize: 1})
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(clientIdleTimeout + time.Second)
	rl.getLimiter("10.0.0.2")

	if removed := rl.cleanup(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := rl.clients["10.0.0.2"]; !ok {
		t.Error("active client dropped")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		xff        string
		want       string
	}{
		{"remote addr", false, "1.2.3.4", "192.0.2.1"},
		{"forwarded", true, "1.2.3.4, 10.0.0.1", "1.2.3.4"},
		{"forwarded single", true, "1.2.3.4", "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := getClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	c := NewCORS(config.FrontendConfig{URL: "http://localhost:3000"})
	handler := c.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/galaxies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
}
