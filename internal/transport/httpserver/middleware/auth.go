package middleware

import (
	"context"
	"net/http"
	"strings"

	"botram-go/internal/auth"
	"botram-go/pkg/logger"
)

type contextKey string

const customerIDKey contextKey = "customer_id"

// CustomerFromContext returns the authenticated customer's id.
func CustomerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerIDKey).(string)
	return id, ok && id != ""
}

// WithCustomer is a test helper for building authenticated contexts.
func WithCustomer(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, customerIDKey, customerID)
}

type JWTAuth struct {
	manager *auth.JWTManager
	log     logger.Logger
}

func NewJWTAuth(manager *auth.JWTManager, log logger.Logger) *JWTAuth {
	return &JWTAuth{manager: manager, log: log}
}

// Middleware validates the bearer token and stores the customer id in the
// request context. Authorization decisions downstream never trust a
// client-supplied id.
func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "missing_token")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(w, "invalid_token")
			return
		}

		claims, err := a.manager.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			a.log.BusinessError("auth: token rejected", err)
			unauthorized(w, "invalid_token")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, claims.CustomerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"` + code + `","message":"unauthorized"}}`))
}
