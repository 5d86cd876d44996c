// Package store provides durable, keyed storage for the three record
// collections (claims, persons, policies). All mutating operations on a
// collection are serialized so concurrent read-modify-write updates on the
// same key can never lose a write.
package store

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasha-github/claimsaipocbuilder1/internal/config"
	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

var (
	// ErrNotFound is returned when no record with the requested id exists.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned by Append when the record's id already
	// exists in the collection. Disambiguation is the caller's job.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Record is anything addressable by a unique string key.
type Record interface {
	Key() string
}

// Collection is a durable, insertion-ordered set of records keyed by id.
type Collection[T Record] interface {
	// ReadAll returns every record in insertion order. A collection that
	// has never been written reads as empty, not as an error.
	ReadAll(ctx context.Context) ([]T, error)
	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)
	// Append adds one record, failing with ErrDuplicateKey on id collision.
	// The record is durably persisted before Append returns.
	Append(ctx context.Context, rec T) error
	// UpdateByKey atomically applies mutate to the record with the given id
	// and persists the result. Concurrent updates to the same id serialize;
	// each sees the previous one's completed effect.
	UpdateByKey(ctx context.Context, id string, mutate func(T) T) (T, error)
}

// Store bundles the three independently lockable collections.
type Store struct {
	Claims   Collection[models.Claim]
	Persons  Collection[models.Person]
	Policies Collection[models.Policy]
}

// Open builds a Store from config. When DATABASE_URL is set the collections
// live in Postgres; otherwise they are JSON files under DATA_DIR. The
// returned cleanup func releases backend resources.
func Open(ctx context.Context, cfg *config.Config) (*Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		st, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, pool.Close, nil
	}

	return NewFileStore(cfg.DataDir), func() {}, nil
}

// NewFileStore builds a Store over JSON collection files under dir.
func NewFileStore(dir string) *Store {
	return &Store{
		Claims:   NewFileCollection[models.Claim](filepath.Join(dir, "claims.json")),
		Persons:  NewFileCollection[models.Person](filepath.Join(dir, "persons.json")),
		Policies: NewFileCollection[models.Policy](filepath.Join(dir, "policies.json")),
	}
}
