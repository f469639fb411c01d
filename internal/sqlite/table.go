package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// table implements types.Table for one entity type described by desc.
// All five entity tables share this implementation.
type table[T any] struct {
	backend *Backend
	desc    *entity[T]
}

// querier is the subset of *sql.DB and *sql.Tx the table needs.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// storageError wraps a driver error. Uniqueness violations become
// ErrConflict; everything else is ErrStorage.
func storageError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, types.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w: %w", op, types.ErrStorage, err)
}

func (t *table[T]) entity(data any) (*T, error) {
	e, ok := data.(*T)
	if !ok || e == nil {
		return nil, fmt.Errorf("%w: %s expects %T, got %T", types.ErrInvalidData, t.desc.name, e, data)
	}
	return e, nil
}

// prepare applies defaults and validation shared by Create and Update.
func (t *table[T]) prepare(e *T) error {
	if t.desc.defaults != nil {
		t.desc.defaults(e)
	}
	return t.desc.validate(e)
}

func (t *table[T]) scan(row rowScanner) (*T, error) {
	e := new(T)
	dest := append([]any{t.desc.id(e)}, t.desc.targets(e)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return e, nil
}

func (t *table[T]) get(ctx context.Context, q querier, id string) (*T, error) {
	row := q.QueryRowContext(ctx, t.backend.dialect.rebind(t.desc.selectSQL()+" WHERE id = ?"), id)
	e, err := t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", t.desc.name, id, types.ErrNotFound)
	}
	if err != nil {
		return nil, storageError("reading "+t.desc.name, err)
	}
	return e, nil
}

// Create validates data, assigns a UUID v7 and server timestamps, and
// inserts the row.
func (t *table[T]) Create(ctx context.Context, data any) (any, error) {
	e, err := t.entity(data)
	if err != nil {
		return nil, err
	}
	if err := t.prepare(e); err != nil {
		return nil, err
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrTrackerDetached
	}

	*t.desc.id(e) = newUUID()
	if t.desc.stamp != nil {
		t.desc.stamp(e, now(), true)
	}
	args := append([]any{*t.desc.id(e)}, t.desc.values(e)...)
	if _, err := t.backend.db.ExecContext(ctx, t.backend.dialect.rebind(t.desc.insertSQL()), args...); err != nil {
		return nil, storageError("inserting into "+t.desc.name, err)
	}
	return e, nil
}

// List returns every row without filtering or explicit ordering.
func (t *table[T]) List(ctx context.Context) ([]any, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrTrackerDetached
	}

	rows, err := t.backend.db.QueryContext(ctx, t.desc.selectSQL())
	if err != nil {
		return nil, storageError("listing "+t.desc.name, err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, storageError("scanning "+t.desc.name, err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing "+t.desc.name, err)
	}
	return results, nil
}

// Get returns the row with the given ID or ErrNotFound.
func (t *table[T]) Get(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrTrackerDetached
	}
	return t.get(ctx, t.backend.db, id)
}

// Update replaces every mutable column of the row. The stored row is read
// inside the same transaction so server-owned fields carry over. When no
// row has the ID nothing is written and the submitted record is returned.
func (t *table[T]) Update(ctx context.Context, id string, data any) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	e, err := t.entity(data)
	if err != nil {
		return nil, err
	}
	if err := t.prepare(e); err != nil {
		return nil, err
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrTrackerDetached
	}

	*t.desc.id(e) = id
	at := now()
	if t.desc.stamp != nil {
		t.desc.stamp(e, at, false)
	}

	tx, err := t.backend.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("updating "+t.desc.name, err)
	}
	defer tx.Rollback()

	prev, err := t.get(ctx, tx, id)
	if errors.Is(err, types.ErrNotFound) {
		// The echo carries the timestamps a create would have set.
		if t.desc.stamp != nil {
			t.desc.stamp(e, at, true)
		}
		return e, nil
	}
	if err != nil {
		return nil, err
	}
	if t.desc.merge != nil {
		t.desc.merge(prev, e)
	}

	args := append(t.desc.values(e), id)
	if _, err := tx.ExecContext(ctx, t.backend.dialect.rebind(t.desc.updateSQL()), args...); err != nil {
		return nil, storageError("updating "+t.desc.name, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("committing "+t.desc.name, err)
	}
	return e, nil
}

// Delete removes the row. Deleting an absent ID is not an error; deleting
// a row that still has children fails on the foreign key.
func (t *table[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return types.ErrTrackerDetached
	}

	if _, err := t.backend.db.ExecContext(ctx, t.backend.dialect.rebind(t.desc.deleteSQL()), id); err != nil {
		return storageError("deleting from "+t.desc.name, err)
	}
	return nil
}
