// Package sessionguard provides the route-level access gate: a middleware
// that lets a request through iff the session store currently holds an
// identity, and otherwise redirects to the sign-in entry point.
package sessionguard

import (
	"net/http"

	"github.com/goliatone/go-router"
)

// SessionReader mirrors the store's read surface without importing the
// session package, avoiding an import cycle.
type SessionReader interface {
	IsAuthenticated() bool
}

// RedirectListener runs right before the redirect is issued. Use it to
// remember the rejected route.
type RedirectListener func(c router.Context)

type Config struct {
	// Filter skips the guard for matching requests.
	Filter func(router.Context) bool
	// Session is required.
	Session SessionReader
	// SignInRoute is the redirect target for unauthenticated requests.
	SignInRoute string
	// OnRedirect listeners run before the redirect is issued.
	OnRedirect []RedirectListener
}

func GetDefaultConfig(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Session == nil {
		panic("sessionguard: missing SessionReader in config")
	}

	if cfg.SignInRoute == "" {
		cfg.SignInRoute = "/signin"
	}

	return cfg
}

// New builds the guard middleware. The decision is recomputed per request;
// nothing is cached between navigations. The redirect replaces the current
// history entry (See Other / Found, never a rendered page), so the
// protected URL is not reachable via back-navigation afterwards.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			if cfg.Session.IsAuthenticated() {
				return ctx.Next()
			}

			for _, listener := range cfg.OnRedirect {
				listener(ctx)
			}

			status := http.StatusSeeOther
			if ctx.Method() == http.MethodGet {
				status = http.StatusFound
			}
			return ctx.Redirect(cfg.SignInRoute, status)
		}
	}
}
