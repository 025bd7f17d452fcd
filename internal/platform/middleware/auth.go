package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/httputil"
	"ekoshield/pkg/requestcontext"
)

// TokenValidator validates a bearer token presented by the console client.
type TokenValidator interface {
	ValidateToken(tokenString string) error
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			const bearerPrefix = "Bearer "

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, apierrors.New(apierrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			if err := validator.ValidateToken(token); err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, apierrors.New(apierrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
