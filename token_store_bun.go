package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// tokenSlotKey is the fixed well-known key of the durable slot. The slot is
// global, not per user: exactly zero or one token exists at any time.
const tokenSlotKey = "auth_token"

// SessionToken is the bun model backing the durable slot.
type SessionToken struct {
	bun.BaseModel `bun:"table:session_tokens,alias:st"`
	Key           string     `bun:"key,pk" json:"key"`
	Value         string     `bun:"value,notnull" json:"value"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

var _ TokenStore = &BunTokenStore{}

// BunTokenStore keeps the durable slot in a one-row SQL table. It trades the
// file slot for transactional storage when the host app already carries a
// database.
type BunTokenStore struct {
	db     *bun.DB
	logger Logger
}

type BunTokenStoreOption func(*BunTokenStore)

// WithBunTokenStoreLogger overrides the default logger.
func WithBunTokenStoreLogger(logger Logger) BunTokenStoreOption {
	return func(s *BunTokenStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewBunTokenStore(db *bun.DB, opts ...BunTokenStoreOption) *BunTokenStore {
	s := &BunTokenStore{
		db:     db,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Init creates the slot table when it does not exist.
func (s *BunTokenStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*SessionToken)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create token slot table")
	}
	return nil
}

func (s *BunTokenStore) Get() (string, bool) {
	record := new(SessionToken)
	err := s.db.NewSelect().
		Model(record).
		Where("key = ?", tokenSlotKey).
		Scan(context.Background())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("token slot read failed", "error", err)
		}
		return "", false
	}
	return record.Value, record.Value != ""
}

func (s *BunTokenStore) Set(token string) error {
	if token == "" {
		return s.Clear()
	}

	now := time.Now()
	record := &SessionToken{
		Key:       tokenSlotKey,
		Value:     token,
		UpdatedAt: &now,
	}

	if _, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background()); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist token")
	}
	return nil
}

// Clear removes the slot row. Idempotent: deleting an absent row succeeds.
func (s *BunTokenStore) Clear() error {
	if _, err := s.db.NewDelete().
		Model((*SessionToken)(nil)).
		Where("key = ?", tokenSlotKey).
		Exec(context.Background()); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear token")
	}
	return nil
}
