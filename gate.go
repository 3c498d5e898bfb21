package session

import "net/http"

// Decision is the outcome of an access evaluation. Absence of authorization
// is expressed as a redirect, never as an error.
type Decision struct {
	Allow    bool
	Redirect string
	// Replace asks the navigation layer to replace the current history
	// entry instead of pushing one, so the protected URL is not reachable
	// via back-navigation after the redirect.
	Replace bool
}

// RedirectStatus maps the decision to an HTTP status for server-driven
// navigation. See Other for non-GET requests, Found otherwise.
func (d Decision) RedirectStatus(method string) int {
	if method == http.MethodGet {
		return http.StatusFound
	}
	return http.StatusSeeOther
}

// Gate decides, for a protected view, whether to render it or redirect to
// the sign-in entry point. The decision is recomputed on every evaluation;
// nothing is cached.
type Gate struct {
	store       SessionReader
	signInRoute string
	logger      Logger
}

type GateOption func(*Gate)

// WithGateLogger overrides the default logger.
func WithGateLogger(logger Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewGate(store SessionReader, cfg Config, opts ...GateOption) *Gate {
	g := &Gate{
		store:       store,
		signInRoute: cfg.GetSignInRoute(),
		logger:      defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Evaluate renders protected content iff the Store holds an identity right
// now. The durable token plays no part at this layer; the view-level
// Bootstrap enforces that second, stricter check.
func (g *Gate) Evaluate() Decision {
	if g.store.IsAuthenticated() {
		return Decision{Allow: true}
	}

	g.logger.Debug("access gate rejecting, redirecting to sign-in")
	return Decision{
		Redirect: g.signInRoute,
		Replace:  true,
	}
}
