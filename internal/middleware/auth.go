package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"journal-transporter/transporter/internal/auth"
	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/constants"
	"journal-transporter/transporter/internal/logging"
	"journal-transporter/transporter/internal/metrics"
	"journal-transporter/transporter/internal/models/entities"
)

// KeyLookup reports the status of an API key; nil means the key is unknown.
type KeyLookup interface {
	GetStatus(ctx context.Context, key string) (*entities.ApiKey, error)
}

// AuthMiddleware accepts either an active X-API-Key or a bearer token signed
// with secret, and stores the client claims on the request context.
func AuthMiddleware(keysRepo KeyLookup, secret []byte, metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			reject := func(method, message string) {
				if metricsReg != nil {
					metricsReg.AuthFailuresTotal.WithLabelValues(method).Inc()
				}
				logging.Warn("Request rejected", "method", method, "path", r.URL.Path, "reason", message)
				common.RespondError(w, start, nil, message, http.StatusUnauthorized)
			}

			var claims auth.ClientClaims

			switch {
			case apiKey != "":
				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					logging.Error("API key lookup failed", "error", err.Error())
					common.RespondError(w, start, err, "", http.StatusInternalServerError)
					return
				}
				if keyRes == nil || !keyRes.Status {
					reject("api_key", constants.MsgUnauthorizedKey)
					return
				}
				claims = &auth.APIKeyClaims{KeyID: keyRes.ApiKey}

			case strings.HasPrefix(authHeader, "Bearer "):
				parsed, err := auth.ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
				if err != nil {
					if !errors.Is(err, auth.ErrNoSecret) {
						logging.Debug("Bearer token rejected", "error", err.Error())
					}
					reject("jwt", constants.MsgUnauthorizedToken)
					return
				}
				claims = parsed

			default:
				reject("none", constants.MsgUnauthorizedAbsent)
				return
			}

			ctx := auth.SetClientClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
