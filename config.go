package session

import (
	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

var _ Config = &BaseConfig{}

// BaseConfig is a Config implementation populated from the environment.
type BaseConfig struct {
	BaseURL              string `env:"SESSION_IDENTITY_URL"`
	RequestTimeout       int    `env:"SESSION_REQUEST_TIMEOUT" envDefault:"10"`
	TokenPath            string `env:"SESSION_TOKEN_PATH"`
	SignInRoute          string `env:"SESSION_SIGNIN_ROUTE" envDefault:"/signin"`
	RejectedRouteKey     string `env:"SESSION_REJECTED_ROUTE_KEY" envDefault:"redirect"`
	RejectedRouteDefault string `env:"SESSION_REJECTED_ROUTE_DEFAULT" envDefault:"/dashboard"`
}

// NewConfigFromEnv reads SESSION_* variables into a BaseConfig.
func NewConfigFromEnv() (*BaseConfig, error) {
	cfg := &BaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse session config")
	}
	return cfg, nil
}

// GetBaseURL is the identity service root, e.g. https://id.example.com/api.
func (c BaseConfig) GetBaseURL() string {
	return c.BaseURL
}

// GetRequestTimeout is the transport timeout in seconds.
func (c BaseConfig) GetRequestTimeout() int {
	return c.RequestTimeout
}

// GetTokenPath is the durable slot location. Empty selects the in-memory
// slot.
func (c BaseConfig) GetTokenPath() string {
	return c.TokenPath
}

// GetSignInRoute is the sign-in entry point rejected navigations land on.
func (c BaseConfig) GetSignInRoute() string {
	return c.SignInRoute
}

// GetRejectedRouteKey names the cookie remembering a rejected route.
func (c BaseConfig) GetRejectedRouteKey() string {
	return c.RejectedRouteKey
}

// GetRejectedRouteDefault is the post-sign-in landing when no rejected
// route was remembered.
func (c BaseConfig) GetRejectedRouteDefault() string {
	return c.RejectedRouteDefault
}
