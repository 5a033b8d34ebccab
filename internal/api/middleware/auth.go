package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/config"
)

// Auth validates the Authorization bearer token against the configured API
// key. When no key is configured the middleware passes every request through,
// which is the demo dashboard mode. A bcrypt hash takes precedence over a
// plaintext key so deployments never have to keep the raw key in the
// environment.
func Auth(cfg config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Key == "" && cfg.KeyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized,
					"UNAUTHORIZED", "Missing or malformed Authorization header", nil)
				return
			}

			if !validToken(cfg, token) {
				response.Error(w, http.StatusUnauthorized,
					"UNAUTHORIZED", "Invalid API key", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func validToken(cfg config.AuthConfig, token string) bool {
	if cfg.KeyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.KeyHash), []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(cfg.Key), []byte(token)) == 1
}
