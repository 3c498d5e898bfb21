package session

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated user. Password is only
// ever populated as transient form input; it is cleared before the identity
// reaches the Store.
type Identity struct {
	ID       string `json:"id,omitempty" form:"id"`
	Email    string `json:"email" form:"email"`
	Name     string `json:"name" form:"name"`
	Password string `json:"password,omitempty" form:"password"`
}

// Complete reports whether the identity carries everything the Store
// requires: non empty id, email, and name.
func (i Identity) Complete() bool {
	return i.ID != "" && i.Email != "" && i.Name != ""
}

// Sanitized returns a copy with the transient password field cleared.
func (i Identity) Sanitized() Identity {
	i.Password = ""
	return i
}

// Credentials is the transient input to a sign-in exchange. Never persisted.
type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SignInResult is the resolved identity/token pair returned by a successful
// sign-in exchange. The exchange itself commits nothing; the caller writes
// the pair through Manager.CommitSignIn as a single explicit step.
type SignInResult struct {
	Identity Identity
	Token    string
}

// TokenStore owns the durable token slot: a single well-known key holding
// zero or one opaque bearer token at a time.
type TokenStore interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

// CredentialClient holds methods to exchange credentials with the identity
// service and manage the durable token lifecycle.
type CredentialClient interface {
	SignUp(ctx context.Context, candidate Identity) error
	SignIn(ctx context.Context, credentials Credentials) (*SignInResult, error)
	GetUserData(ctx context.Context, id string) (*Identity, error)
	IsAuthenticated() bool
	Logout()
}

// SessionReader is the read surface of the Store consumed by the Gate and
// the Bootstrap.
type SessionReader interface {
	Get() (Identity, bool)
	IsAuthenticated() bool
}

// Config holds session options.
type Config interface {
	GetBaseURL() string
	GetRequestTimeout() int
	GetTokenPath() string
	GetSignInRoute() string
	GetRejectedRouteKey() string
	GetRejectedRouteDefault() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
