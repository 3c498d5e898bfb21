package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

var _ CredentialClient = &Client{}

// Client is the gateway to the identity service and the sole owner of the
// durable token slot. The slot is a single global resource, so construct one
// Client per process and share it by reference; independent clients racing
// on the slot is what the old global-singleton pattern was guarding against.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	logger  Logger
	Debug   bool
}

type ClientOption func(*Client)

// WithHTTPClient overrides the transport. Timeouts live here; the session
// core does not manage them.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenStore overrides the durable slot implementation.
func WithTokenStore(store TokenStore) ClientOption {
	return func(c *Client) {
		if store != nil {
			c.tokens = store
		}
	}
}

// WithClientLogger overrides the default logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a new Client. The default slot is file-backed when the
// config names a token path, in-memory otherwise.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	timeout := 10 * time.Second
	if cfg.GetRequestTimeout() > 0 {
		timeout = time.Duration(cfg.GetRequestTimeout()) * time.Second
	}

	var tokens TokenStore = NewMemoryTokenStore()
	if cfg.GetTokenPath() != "" {
		tokens = NewFileTokenStore(cfg.GetTokenPath())
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.GetBaseURL(), "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Tokens exposes the durable slot so the commit step (Manager) and the
// Bootstrap share the same slot instance as the client.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signUpResponse struct {
	Token string `json:"token,omitempty"`
}

type signInResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type serviceReply struct {
	Message string `json:"message,omitempty"`
}

// SignUp registers a new account with the identity service. If the service
// also issues a token it is persisted durably, but the Session Store is
// never touched: a successful signup does not authenticate the session, the
// caller redirects to sign-in instead.
func (c *Client) SignUp(ctx context.Context, candidate Identity) error {
	body := signUpRequest{
		Email:    candidate.Email,
		Name:     candidate.Name,
		Password: candidate.Password,
	}

	if c.Debug {
		fmt.Println("======= SESSION SIGNUP ======")
		fmt.Println(print.MaybePrettyJSON(map[string]any{
			"email": body.Email,
			"name":  body.Name,
		}))
		fmt.Println("=============================")
	}

	resp, err := c.postJSON(ctx, "/signup", body)
	if err != nil {
		return newUnreachable(err, "signup")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var payload signUpResponse
		if err := json.Unmarshal(raw, &payload); err == nil && payload.Token != "" {
			if err := c.tokens.Set(payload.Token); err != nil {
				return err
			}
		}
		return nil
	}

	message := serviceMessage(raw)
	switch resp.StatusCode {
	case http.StatusConflict:
		return newServiceError(ErrAlreadyExists, message)
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return newValidationRejected(message, "signup failed")
	default:
		c.logger.Error("signup unexpected reply", "status", resp.StatusCode)
		return newUnknownServiceError(message, "signup failed")
	}
}

// SignIn exchanges credentials for an identity/token pair. It mutates
// neither the durable slot nor the Session Store; the caller commits the
// result explicitly so the write order stays visible at the call site.
func (c *Client) SignIn(ctx context.Context, credentials Credentials) (*SignInResult, error) {
	resp, err := c.postJSON(ctx, "/signin", credentials)
	if err != nil {
		return nil, newUnreachable(err, "signin")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newServiceError(ErrInvalidCredentials, serviceMessage(raw))
	}

	var payload signInResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to parse signin response")
	}

	return &SignInResult{
		Identity: Identity{
			ID:    payload.User.ID,
			Email: payload.User.Email,
			Name:  payload.User.Name,
		},
		Token: payload.Token,
	}, nil
}

// GetUserData fetches the identity for id, presenting the durable token as a
// bearer credential. An authentication-expired reply clears the durable slot
// before the error surfaces, so token presence never outlives its validity.
func (c *Client) GetUserData(ctx context.Context, id string) (*Identity, error) {
	token, ok := c.tokens.Get()
	if !ok {
		return nil, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+id, nil)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to build user request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newUnreachable(err, "get_user_data")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.tokens.Clear(); err != nil {
			c.logger.Error("failed to clear expired token", "error", err)
		}
		return nil, ErrTokenExpired
	case resp.StatusCode == http.StatusNotFound:
		return nil, newServiceError(ErrUserNotFound, serviceMessage(raw))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, newUnknownServiceError(serviceMessage(raw), "failed to fetch user data")
	}

	var payload userResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to parse user response")
	}

	return &Identity{
		ID:    payload.ID,
		Email: payload.Email,
		Name:  payload.Name,
	}, nil
}

// IsAuthenticated reports durable token presence. This is weaker than the
// Store's identity check: a token can be present with no identity in memory
// (e.g. after a restart) and the two are deliberately kept distinct.
func (c *Client) IsAuthenticated() bool {
	_, ok := c.tokens.Get()
	return ok
}

// Logout clears the durable token unconditionally. Idempotent; never fails
// from the caller's perspective.
func (c *Client) Logout() {
	if err := c.tokens.Clear(); err != nil {
		c.logger.Error("logout failed to clear token", "error", err)
	}
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// serviceMessage extracts the service-provided message from an error reply,
// returning "" when there is none so per-operation fallbacks apply.
func serviceMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var reply serviceReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return ""
	}
	return reply.Message
}
