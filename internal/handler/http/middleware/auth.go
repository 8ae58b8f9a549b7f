package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/authn"
)

type contextKey string

const (
	userContextKey   contextKey = "auth.user"
	claimsContextKey contextKey = "auth.claims"
)

// Authenticate verifies the bearer token and resolves it to a local user,
// provisioning one on first sight. It attaches the user and the verified
// claims to the request context; authorization is a separate step, see
// RequireRole.
func Authenticate(verifier *authn.Verifier, userService user.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				response.Unauthorized(w, "Missing or malformed authorization header")
				return
			}

			claims, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}
			if claims.Subject == "" {
				response.Unauthorized(w, "Token has no subject")
				return
			}

			resolved, err := userService.Resolve(r.Context(), claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, resolved)
			ctx = context.WithValue(ctx, claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserFromContext returns the authenticated user attached by Authenticate.
func UserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userContextKey).(user.User)
	return u, ok
}

// ClaimsFromContext returns the verified token claims.
func ClaimsFromContext(ctx context.Context) (authn.Claims, bool) {
	c, ok := ctx.Value(claimsContextKey).(authn.Claims)
	return c, ok
}
