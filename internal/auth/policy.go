package auth

import (
	"net/http"
	"strings"
)

// Rule grants access to a method and path prefix. Method "*" matches any
// method. Public rules bypass authentication entirely.
type Rule struct {
	Method   string
	Path     string
	Requires Role
	Public   bool
}

// Policy is an ordered rule table evaluated first-match-wins.
type Policy struct {
	Rules []Rule
}

// DefaultPolicy builds the standard rule table: health and readiness probes
// are public, reads under the API base path require USER, writes under the
// base path require ADMIN, and everything else requires an authenticated
// account.
func DefaultPolicy(basePath string) Policy {
	return Policy{
		Rules: []Rule{
			{Method: http.MethodGet, Path: "/healthz", Public: true},
			{Method: http.MethodGet, Path: "/readyz", Public: true},
			{Method: http.MethodOptions, Path: "/", Public: true},
			{Method: http.MethodGet, Path: basePath, Requires: RoleUser},
			{Method: "*", Path: basePath, Requires: RoleAdmin},
			{Method: "*", Path: "/", Requires: RoleUser},
		},
	}
}

// Evaluate returns the first rule matching the method and path.
func (p Policy) Evaluate(method, path string) (Rule, bool) {
	for _, rule := range p.Rules {
		if matchMethod(rule.Method, method) && matchPath(rule.Path, path) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Allows reports whether a request with the given role may proceed. Requests
// with no matching rule are denied.
func (p Policy) Allows(method, path string, role Role) bool {
	rule, ok := p.Evaluate(method, path)
	if !ok {
		return false
	}
	if rule.Public {
		return true
	}
	return role.Satisfies(rule.Requires)
}

func matchMethod(pattern, method string) bool {
	return pattern == "*" || pattern == method
}

// matchPath matches on whole path segments so "/entities" covers
// "/entities/42" but not "/entities-archive".
func matchPath(prefix, path string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
