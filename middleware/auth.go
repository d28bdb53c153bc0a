package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"go-marketplace/apperrors"
	"go-marketplace/utils"
)

// Key type for context
type contextKey string

const subjectContextKey = contextKey("subject")

// Subject returns the verified caller email the guard attached, if any.
func Subject(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(subjectContextKey).(string)
	return email, ok
}

// WithSubject attaches a verified email to a context. Exported for tests.
func WithSubject(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, subjectContextKey, email)
}

// Auth validates the Bearer credential on each request and attaches the
// verified subject to the request context. A missing credential is rejected
// before token verification is even attempted. No role check happens here;
// roles are business rules enforced per operation in the service layer.
func Auth(tokens *utils.TokenService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, apperrors.Forbidden("authorization header is missing"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteError(w, apperrors.Forbidden("authorization header is malformed"))
				return
			}

			email, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					utils.WriteError(w, apperrors.Unauthorized("token is expired", err))
					return
				}
				utils.WriteError(w, apperrors.Unauthorized("token is not valid", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), email)))
		})
	}
}
