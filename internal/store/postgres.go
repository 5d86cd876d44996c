package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

const uniqueViolationCode = "23505"

// PostgresCollection stores each record as a JSONB document keyed by id.
// Row locks via SELECT ... FOR UPDATE serialize concurrent UpdateByKey calls
// on the same key; the id primary key enforces the Append contract.
type PostgresCollection[T Record] struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresCollection[T Record](pool *pgxpool.Pool, table string) *PostgresCollection[T] {
	return &PostgresCollection[T]{pool: pool, table: table}
}

// NewPostgresStore builds a Store over Postgres, creating the collection
// tables if they do not exist yet.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	for _, table := range []string{"claims", "persons", "policies"} {
		query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		seq BIGSERIAL,
		doc JSONB NOT NULL
	);`, table)
		if _, err := pool.Exec(ctx, query); err != nil {
			return nil, fmt.Errorf("error creating %s table: %w", table, err)
		}
	}

	return &Store{
		Claims:   NewPostgresCollection[models.Claim](pool, "claims"),
		Persons:  NewPostgresCollection[models.Person](pool, "persons"),
		Policies: NewPostgresCollection[models.Policy](pool, "policies"),
	}, nil
}

func (c *PostgresCollection[T]) ReadAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY seq`, c.table)
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error reading collection %s: %w", c.table, err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", c.table, err)
		}
		var rec T
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("error decoding %s document: %w", c.table, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (c *PostgresCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	var doc []byte
	err := c.pool.QueryRow(ctx, query, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("error reading %s %s: %w", c.table, id, err)
	}

	var rec T
	if err := json.Unmarshal(doc, &rec); err != nil {
		return zero, fmt.Errorf("error decoding %s document: %w", c.table, err)
	}
	return rec, nil
}

func (c *PostgresCollection[T]) Append(ctx context.Context, rec T) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("error encoding %s document: %w", c.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)
	if _, err := c.pool.Exec(ctx, query, rec.Key(), doc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%s: %w", rec.Key(), ErrDuplicateKey)
		}
		return fmt.Errorf("error appending to %s: %w", c.table, err)
	}
	return nil
}

func (c *PostgresCollection[T]) UpdateByKey(ctx context.Context, id string, mutate func(T) T) (T, error) {
	var zero T

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("error beginning transaction on %s: %w", c.table, err)
	}
	defer func() {
		if rx := tx.Rollback(ctx); rx != nil && !errors.Is(rx, pgx.ErrTxClosed) {
			log.Printf("Error rolling back transaction: %v", rx)
		}
	}()

	selectQuery := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1 FOR UPDATE`, c.table)
	var doc []byte
	err = tx.QueryRow(ctx, selectQuery, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("error locking %s %s: %w", c.table, id, err)
	}

	var rec T
	if err := json.Unmarshal(doc, &rec); err != nil {
		return zero, fmt.Errorf("error decoding %s document: %w", c.table, err)
	}

	updated := mutate(rec)
	updatedDoc, err := json.Marshal(updated)
	if err != nil {
		return zero, fmt.Errorf("error encoding %s document: %w", c.table, err)
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET doc = $2 WHERE id = $1`, c.table)
	if _, err := tx.Exec(ctx, updateQuery, id, updatedDoc); err != nil {
		return zero, fmt.Errorf("error updating %s %s: %w", c.table, id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("error committing update on %s %s: %w", c.table, id, err)
	}
	return updated, nil
}
