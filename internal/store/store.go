package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// Observer receives the duration of every statement the store runs.
type Observer func(statement string, d time.Duration)

type Option func(*Store)

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observe = o }
}

// Store reads and writes appointments. VerifySchema must run before the
// store is shared between goroutines; after that it is read-only.
type Store struct {
	db      DB
	observe Observer
	stmts   statements
}

func New(db DB, opts ...Option) *Store {
	s := &Store{
		db:      db,
		observe: func(string, time.Duration) {},
		stmts:   buildStatements(primaryIDColumn),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Ping checks that a pool connection can be acquired.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// IDColumn reports which physical column is mapped to the public id.
func (s *Store) IDColumn() string {
	return s.stmts.idColumn
}

func (s *Store) timed(statement string, start time.Time) {
	s.observe(statement, time.Since(start))
}
