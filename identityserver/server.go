// Package identityserver is a reference implementation of the identity
// service the session client talks to: signup, signin, and bearer-token
// user lookup over HTTP. It backs the integration tests and can run as a
// local fixture.
package identityserver

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Logger mirrors the session package logger without importing it.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) { fmt.Printf("[ERR] IDSVC "+format+"\n", args...) }
func (d defLogger) Warn(format string, args ...any)  { fmt.Printf("[WRN] IDSVC "+format+"\n", args...) }
func (d defLogger) Info(format string, args ...any)  { fmt.Printf("[INF] IDSVC "+format+"\n", args...) }
func (d defLogger) Debug(format string, args ...any) { fmt.Printf("[DBG] IDSVC "+format+"\n", args...) }

// Server hosts the identity endpoints.
type Server struct {
	app    *fiber.App
	db     *bun.DB
	users  Users
	tokens *TokenMint
	logger Logger
}

type Option func(*Server)

// WithLogger overrides the default logger.
func WithLogger(logger Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTokenMint overrides the default mint, e.g. to shorten expiry in
// tests.
func WithTokenMint(mint *TokenMint) Option {
	return func(s *Server) {
		if mint != nil {
			s.tokens = mint
		}
	}
}

// New builds a Server over db, signing bearer tokens with signingKey.
func New(db *bun.DB, signingKey []byte, opts ...Option) *Server {
	s := &Server{
		app:    fiber.New(),
		db:     db,
		users:  NewUsersRepository(db),
		tokens: NewTokenMint(signingKey, 24*time.Hour, "go-session-identity"),
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.registerRoutes()
	return s
}

// OpenDB opens a sqlite-backed bun DB for the server.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates the users table when missing.
func (s *Server) CreateSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create users table")
	}
	return nil
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails.
func (s *Server) Listen(addr string) error {
	s.logger.Info("identity service listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) registerRoutes() {
	s.app.Post("/signup", s.handleSignUp)
	s.app.Post("/signin", s.handleSignIn)
	s.app.Get("/users/:id", s.handleGetUser)
}
