// Package authz is the declarative authorization gate for ticketd routes.
//
// Access control is a table of (method, path pattern) rules, each tagged
// public, authenticated, or admin. The gate evaluates the table
// most-specific-pattern-first after the identity middleware has run; routes
// with no matching rule require authentication. Anonymous callers hitting a
// protected route get 401; authenticated callers without the required role
// get 403.
package authz

import (
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/arthurv/ticketd/pkg/audit"
	"github.com/arthurv/ticketd/pkg/identity"
)

// Access is the authorization requirement attached to a route pattern.
type Access int

const (
	// AccessAuthenticated requires any resolved identity. It is also the
	// default for routes no rule matches.
	AccessAuthenticated Access = iota
	// AccessPublic allows anonymous callers.
	AccessPublic
	// AccessAdmin requires an identity with the administrator role.
	AccessAdmin
)

// Rule maps a route pattern to its required access. Pattern is a path.Match
// pattern ('*' matches within one segment); an empty Method matches every
// method.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

func (r Rule) matches(method, reqPath string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	ok, err := path.Match(r.Pattern, reqPath)
	return err == nil && ok
}

// specificity orders rules so the most specific pattern is consulted first:
// more path segments beat fewer, fewer wildcards beat more, and a
// method-bound rule beats a method-agnostic one.
func (r Rule) specificity() (segments, literals, methodBound int) {
	segments = strings.Count(r.Pattern, "/")
	literals = len(r.Pattern) - strings.Count(r.Pattern, "*")
	if r.Method != "" {
		methodBound = 1
	}
	return
}

// Gate evaluates the rule table against incoming requests.
type Gate struct {
	rules []Rule
}

// NewGate creates a Gate. The rule order given does not matter; rules are
// sorted most-specific-first internally.
func NewGate(rules []Rule) *Gate {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, li, mi := sorted[i].specificity()
		sj, lj, mj := sorted[j].specificity()
		if si != sj {
			return si > sj
		}
		if li != lj {
			return li > lj
		}
		return mi > mj
	})
	return &Gate{rules: sorted}
}

// Classify returns the access requirement for a (method, path) pair.
func (g *Gate) Classify(method, reqPath string) Access {
	for _, rule := range g.rules {
		if rule.matches(method, reqPath) {
			return rule.Access
		}
	}
	return AccessAuthenticated
}

// Middleware enforces the rule table. It must run after the identity
// middleware so the request context already carries the caller, if any.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access := g.Classify(r.Method, r.URL.Path)
		if access == AccessPublic {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := identity.Get(r.Context())
		if !ok {
			audit.Log(audit.AccessDeniedEvent{
				Method:   r.Method,
				Path:     r.URL.Path,
				ClientIP: r.RemoteAddr,
			})
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if access == AccessAdmin && !id.IsAdmin() {
			audit.Log(audit.AccessDeniedEvent{
				Handle:   id.Handle,
				Method:   r.Method,
				Path:     r.URL.Path,
				ClientIP: r.RemoteAddr,
			})
			respondError(w, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}

// DefaultRules is the route classification for the ticketd API:
// authentication endpoints are public, reads of tickets, categories and
// priorities are public, user management and ticket deletion are
// admin-only, and everything else needs authentication.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "", Pattern: "/", Access: AccessPublic},
		{Method: "", Pattern: "/health", Access: AccessPublic},
		{Method: "", Pattern: "/api/auth/*", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/ticket", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/ticket/*", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/category", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/category/*", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/priority", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/priority/*", Access: AccessPublic},
		{Method: http.MethodDelete, Pattern: "/api/ticket/*", Access: AccessAdmin},
		{Method: http.MethodPut, Pattern: "/api/ticket/*/resolve", Access: AccessAdmin},
		{Method: "", Pattern: "/api/user", Access: AccessAdmin},
		{Method: "", Pattern: "/api/user/*", Access: AccessAdmin},
	}
}
