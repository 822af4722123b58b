// Package pgstore stores catalog documents as jsonb rows in PostgreSQL.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catalogadmin/internal/recordstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	body       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_body_idx ON documents USING GIN (body jsonb_path_ops);
CREATE UNIQUE INDEX IF NOT EXISTS documents_subcategory_name_idx
	ON documents ((body->>'category_id'), (body->>'sub_name'))
	WHERE collection = 'subcategories';
`

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// EnsureSchema creates the documents table if it does not exist yet.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

type Collection[T any] struct {
	db   DBTX
	name string
}

func New[T any](db DBTX, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) NewID() string { return uuid.NewString() }

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	rec, ok := any(doc).(recordstore.Identified)
	if !ok || rec.RecordID() == "" {
		return fmt.Errorf("insert into %s: document has no _id", c.name)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	const q = `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb);`
	if _, err := c.db.Exec(ctx, q, c.name, rec.RecordID(), body); err != nil {
		return fmt.Errorf("insert into %s: %w", c.name, mapWriteError(err))
	}
	return nil
}

func (c *Collection[T]) Find(ctx context.Context, filter recordstore.Filter) ([]T, error) {
	containment, err := encodeObject(filter)
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT body
		FROM documents
		WHERE collection = $1 AND body @> $2::jsonb
		ORDER BY created_at, id;
	`
	rows, err := c.db.Query(ctx, q, c.name, containment)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.name, err)
	}
	return collect[T](rows)
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	const q = `SELECT body FROM documents WHERE collection = $1 AND id = $2;`

	var body []byte
	if err := c.db.QueryRow(ctx, q, c.name, id).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, recordstore.ErrNotFound
		}
		return nil, fmt.Errorf("find %s %s: %w", c.name, id, err)
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &v, nil
}

func (c *Collection[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	const q = `SELECT body FROM documents WHERE collection = $1 AND id = ANY($2) ORDER BY created_at, id;`
	rows, err := c.db.Query(ctx, q, c.name, ids)
	if err != nil {
		return nil, fmt.Errorf("find ids in %s: %w", c.name, err)
	}
	return collect[T](rows)
}

func (c *Collection[T]) UpdateByID(ctx context.Context, id string, fields recordstore.Fields) error {
	patch, err := encodeObject(withoutID(fields))
	if err != nil {
		return err
	}

	const q = `UPDATE documents SET body = body || $3::jsonb WHERE collection = $1 AND id = $2;`
	cmd, err := c.db.Exec(ctx, q, c.name, id, patch)
	if err != nil {
		return fmt.Errorf("update %s %s: %w", c.name, id, mapWriteError(err))
	}
	if cmd.RowsAffected() == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	cmd, err := c.db.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2;`, c.name, id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.name, id, err)
	}
	if cmd.RowsAffected() == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) Count(ctx context.Context, filter recordstore.Filter) (int64, error) {
	containment, err := encodeObject(filter)
	if err != nil {
		return 0, err
	}

	var n int64
	const q = `SELECT COUNT(*) FROM documents WHERE collection = $1 AND body @> $2::jsonb;`
	if err := c.db.QueryRow(ctx, q, c.name, containment).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

// mapWriteError turns unique violations into recordstore.ErrDuplicate,
// keeping the driver error in the chain.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", recordstore.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func collect[T any](rows pgx.Rows) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

// encodeObject renders a filter or patch as a JSON object. An empty map
// encodes as {} which every document contains.
func encodeObject[M ~map[string]any](m M) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, fmt.Errorf("encode object: %w", err)
	}
	return b, nil
}

func withoutID(fields recordstore.Fields) recordstore.Fields {
	if _, ok := fields["_id"]; !ok {
		return fields
	}
	out := make(recordstore.Fields, len(fields))
	for k, v := range fields {
		if k != "_id" {
			out[k] = v
		}
	}
	return out
}
