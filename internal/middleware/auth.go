package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"stellaris-server/internal/auth"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

const authCookie = "auth_token"

type Auth struct {
	tokens *auth.TokenManager
}

func NewAuth(tokens *auth.TokenManager) *Auth {
	return &Auth{tokens: tokens}
}

// bearerToken reads the Authorization header, falling back to the auth cookie.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(authCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func (a *Auth) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "jwt",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing JWT authentication")

		token := bearerToken(r)
		if token == "" {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		logger.Debug("JWT authentication successful",
			"username", claims.Username,
			"role", claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.JWTMiddleware(AdminMiddleware(next))
}

func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
