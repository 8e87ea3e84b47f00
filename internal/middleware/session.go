package middleware

import (
	"context"
	"net/http"

	"mini-storefront/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const cartKeyContextKey contextKey = "cart-key"

// sessionMaxAge keeps the cart cookie for 30 days.
const sessionMaxAge = 30 * 24 * 60 * 60

// CartSession makes sure every request carries a cart session cookie and stores the
// derived cart slot key in the request context. Missing or malformed cookies are
// replaced with a fresh UUID.
func CartSession(cookieName string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(cookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = id.String()
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   sessionMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				logger.Debug().Str("session_id", sessionID).Msg("new cart session")
			}

			ctx := WithCartKey(r.Context(), store.SessionKey(sessionID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCartKey returns a context carrying the cart slot key.
func WithCartKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, cartKeyContextKey, key)
}

// CartKey returns the cart slot key stored by CartSession, or store.DefaultKey
// when the request did not pass through it.
func CartKey(ctx context.Context) string {
	if key, ok := ctx.Value(cartKeyContextKey).(string); ok && key != "" {
		return key
	}
	return store.DefaultKey
}
