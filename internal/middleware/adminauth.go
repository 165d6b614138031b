package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/funnelbase/funnelbase/internal/auth"
)

// AdminAuthConfig holds configuration for the admin-key middleware.
type AdminAuthConfig struct {
	Logger *slog.Logger
	// KeyHash is the argon2id PHC hash of the admin key.
	// Empty disables the check entirely and leaves the admin surface open.
	KeyHash string
}

// AdminAuth returns a middleware gating the admin endpoints behind a single
// pre-shared key. The key travels as "Authorization: Bearer <key>" or in the
// X-API-Key header and is verified against the configured argon2id hash.
func AdminAuth(cfg AdminAuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.KeyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := extractKey(r)
			if key == "" {
				cfg.Logger.Warn("admin authentication failed",
					slog.String("reason", "missing_key"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			match, err := auth.VerifyKey(key, cfg.KeyHash)
			if err != nil || !match {
				cfg.Logger.Warn("admin authentication failed",
					slog.String("reason", "invalid_key"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractKey extracts the admin key from the request.
// Supports both "Authorization: Bearer <key>" and "X-API-Key: <key>" headers.
func extractKey(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.Header.Get("X-API-Key")
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"Invalid or missing admin key"}`))
}
