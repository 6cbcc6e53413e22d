package auth

import (
	"log/slog"
	"net/http"

	"github.com/nlowen/catalog/pkg/handlers"
)

// Gate enforces a Policy over an http.Handler using HTTP Basic credentials.
type Gate struct {
	source Source
	policy Policy
	logger *slog.Logger
}

func NewGate(source Source, policy Policy, logger *slog.Logger) *Gate {
	return &Gate{
		source: source,
		policy: policy,
		logger: logger.With("system", "auth"),
	}
}

// Middleware wraps next with authentication and policy checks. Public routes
// pass through untouched. Failed authentication yields 401 with a Basic
// challenge, policy denial yields 403.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, ok := g.policy.Evaluate(r.Method, r.URL.Path)
		if ok && rule.Public {
			next.ServeHTTP(w, r)
			return
		}

		username, password, provided := r.BasicAuth()
		if !provided {
			g.unauthorized(w, r, ErrMissingCredentials)
			return
		}

		credentials, found := g.source.Lookup(username)
		if !found {
			g.unauthorized(w, r, ErrInvalidCredentials)
			return
		}

		if err := credentials.Verify(password); err != nil {
			g.unauthorized(w, r, err)
			return
		}

		if !g.policy.Allows(r.Method, r.URL.Path, credentials.Role) {
			g.logger.Warn(
				"request denied",
				"user", username,
				"role", credentials.Role,
				"method", r.Method,
				"path", r.URL.Path,
			)
			handlers.RespondError(w, g.logger, http.StatusForbidden, ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Gate) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	g.logger.Warn(
		"authentication failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	w.Header().Set("WWW-Authenticate", `Basic realm="catalog"`)
	handlers.RespondError(w, g.logger, http.StatusUnauthorized, err)
}
