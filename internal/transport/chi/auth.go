package chi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storeguard/internal/domain/credential"
	logpkg "github.com/kailas-cloud/storeguard/internal/logger"
	"github.com/kailas-cloud/storeguard/internal/metrics"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type userKey struct{}

// UserFromContext returns the username verified by BasicAuthMiddleware.
func UserFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(userKey{}).(string)
	return u, ok
}

// BasicAuthMiddleware returns a middleware that checks HTTP Basic credentials
// with verifier. Missing or wrong credentials get 401 with a Basic challenge.
func BasicAuthMiddleware(verifier *credential.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			username, secret, ok := r.BasicAuth()
			if !ok {
				denyAuth(w, r, verifier.Challenge(), "missing basic credentials", nil)
				return
			}

			user, err := verifier.Verify(username, secret)
			if err != nil {
				challenge := verifier.Challenge()
				var ue *credential.UnauthorizedError
				if errors.As(err, &ue) {
					challenge = ue.Challenge
				}
				denyAuth(w, r, challenge, "invalid credentials", err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			ctx = logpkg.WithUser(ctx, user)
			setRequestUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denyAuth(w http.ResponseWriter, r *http.Request, challenge, message string, err error) {
	metrics.RejectionsTotal.WithLabelValues(string(ErrorResponseCodeUnauthorized)).Inc()
	logpkg.FromContext(r.Context()).Warn("request rejected",
		logpkg.Reason(string(ErrorResponseCodeUnauthorized)),
		zap.String("detail", message),
		zap.Error(err),
	)
	w.Header().Set("WWW-Authenticate", challenge)
	writeError(w, http.StatusUnauthorized, ErrorResponseCodeUnauthorized, message)
}
