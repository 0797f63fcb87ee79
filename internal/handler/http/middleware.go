package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/internal/service"
	"github.com/mtsdb/dropship-oasis-storefront/pkg/httputil"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	identityKey contextKey = "identity"
	cartIDKey   contextKey = "cart_id"
)

// SessionAuth resolves the bearer token to an identity snapshot and stores
// it in the request context. Requests with no token, an unknown token, or a
// discarded snapshot continue as anonymous; only storage failures reject.
func SessionAuth(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := sessions.CurrentUser(r.Context(), bearerToken(r))
			if err != nil {
				httputil.WriteJSON(w, http.StatusInternalServerError, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "INTERNAL_ERROR", Message: "an internal error occurred"},
				})
				return
			}

			if identity != nil {
				ctx := context.WithValue(r.Context(), identityKey, identity)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
			})
			return
		}
		if !identity.IsAdmin() {
			httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "FORBIDDEN", Message: "admin access required"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CartIDFromHeader reads the X-Cart-ID header identifying the browsing
// context and stores it in the request context. Carts exist independently
// of authentication, so this is required even for anonymous requests.
func CartIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := strings.TrimSpace(r.Header.Get("X-Cart-ID"))
		if cartID == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Cart-ID header is required"},
			})
			return
		}
		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// identityFromContext extracts the authenticated identity from the request
// context. The second return is false for anonymous requests.
func identityFromContext(ctx context.Context) (*domain.UserIdentity, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.UserIdentity)
	return identity, ok && identity != nil
}

func cartIDFromContext(ctx context.Context) (string, bool) {
	cartID, ok := ctx.Value(cartIDKey).(string)
	return cartID, ok && cartID != ""
}
