package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jeromeheuze/puzzle-generator/internal/config"
)

type CtxKey int

const (
	CtxAdmin CtxKey = iota
	CtxDeviceClaims
)

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	return token, ok && token != ""
}

// Auth resolves the bearer token into either admin rights or device
// claims and stores the result on the request context. Requests without
// credentials pass through untagged; handlers decide what they require.
func Auth(log *slog.Logger, auth *config.Auth, jwt *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				h.ServeHTTP(w, r)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(auth.AdminKey)) == 1 {
				ctx := context.WithValue(r.Context(), CtxAdmin, true)
				h.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := jwt.ParseDeviceClaims(token)
			if err != nil {
				log.Debug("unrecognized bearer token", "error", err)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxDeviceClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdmin reports whether the request carried the admin key.
func IsAdmin(r *http.Request) bool {
	admin, ok := r.Context().Value(CtxAdmin).(bool)
	return ok && admin
}

// Device returns the device claims attached by [Auth], if any.
func Device(r *http.Request) (*config.DeviceClaims, bool) {
	claims, ok := r.Context().Value(CtxDeviceClaims).(*config.DeviceClaims)
	return claims, ok
}
