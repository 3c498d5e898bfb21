package session

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	"github.com/goliatone/go-session/middleware/sessionguard"
)

// Manager ties the credential client, the durable slot, and the Store
// together. It owns the commit step of a sign-in and the session teardown,
// and carries the redirect bookkeeping for rejected navigations.
type Manager struct {
	client CredentialClient
	tokens TokenStore
	store  *Store
	cfg    Config
	Logger Logger
}

func NewManager(client CredentialClient, tokens TokenStore, store *Store, cfg Config) (*Manager, error) {
	if client == nil {
		return nil, goerrors.New("manager requires a credential client", goerrors.CategoryBadInput)
	}
	if tokens == nil {
		return nil, goerrors.New("manager requires a token store", goerrors.CategoryBadInput)
	}
	if store == nil {
		return nil, goerrors.New("manager requires a session store", goerrors.CategoryBadInput)
	}

	return &Manager{
		client: client,
		tokens: tokens,
		store:  store,
		cfg:    cfg,
		Logger: defLogger{},
	}, nil
}

// Store exposes the session store for gates and views.
func (m *Manager) Store() *Store {
	return m.store
}

// Client exposes the credential client.
func (m *Manager) Client() CredentialClient {
	return m.client
}

// SignIn runs the credential exchange and commits the result. Failures pass
// through untouched so the caller sees the service message.
func (m *Manager) SignIn(ctx context.Context, credentials Credentials) (*Identity, error) {
	result, err := m.client.SignIn(ctx, credentials)
	if err != nil {
		m.Logger.Error("sign in exchange failed", "error", err)
		return nil, err
	}

	if err := m.CommitSignIn(result); err != nil {
		return nil, err
	}

	identity := result.Identity.Sanitized()
	return &identity, nil
}

// CommitSignIn writes the resolved pair in the one order the gate relies
// on: durable token first, then the in-memory identity. The Store must
// never read authenticated while the token write is uncommitted.
func (m *Manager) CommitSignIn(result *SignInResult) error {
	if result == nil || result.Token == "" {
		return goerrors.New("sign in result missing token", goerrors.CategoryBadInput)
	}
	if !result.Identity.Complete() {
		return goerrors.New("sign in result missing identity fields", goerrors.CategoryBadInput)
	}

	if err := m.tokens.Set(result.Token); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist session token")
	}

	m.store.Set(result.Identity)
	return nil
}

// Logout clears the durable token and the in-memory identity. Idempotent;
// callers observe both gone regardless of prior state.
func (m *Manager) Logout() {
	m.client.Logout()
	m.store.Clear()
}

// Protected builds the route-level gate for protected paths. Evaluated on
// every navigation; a rejection remembers the rejected route and redirects
// to sign-in.
func (m *Manager) Protected() router.MiddlewareFunc {
	return sessionguard.New(sessionguard.Config{
		Session:     m.store,
		SignInRoute: m.cfg.GetSignInRoute(),
		OnRedirect:  []sessionguard.RedirectListener{m.SetRedirect},
	})
}

// SetRedirect remembers the rejected route so a later successful sign-in
// can return the user where they were headed.
func (m *Manager) SetRedirect(c router.Context) {
	rejectedRoute := m.cfg.GetRejectedRouteKey()

	m.Logger.Info("setting redirect cookie", "key", rejectedRoute, "path", c.OriginalURL())

	c.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetRedirect pops the remembered route, falling back to def.
func (m *Manager) GetRedirect(c router.Context, def ...string) string {
	rejectedRoute := m.cfg.GetRejectedRouteKey()
	r := c.Cookies(rejectedRoute)
	if r == "" {
		if len(def) > 0 {
			return def[0]
		}
		return m.cfg.GetRejectedRouteDefault()
	}
	m.cookieDel(c, rejectedRoute)
	return r
}

func (m *Manager) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
