package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

const (
	insertUser = `INSERT INTO users (id, username, password, created_at) VALUES (?, ?, ?, ?)`
	selectUser = `SELECT id, username, password, created_at FROM users WHERE username = ?`
)

// CreateUser inserts u. The UNIQUE constraint on username is the only
// duplicate check; a collision returns ErrConflict.
func (b *Backend) CreateUser(ctx context.Context, u *types.User) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrTrackerDetached
	}

	u.ID = newUUID()
	u.CreatedAt = now()
	_, err := b.db.ExecContext(ctx, b.dialect.rebind(insertUser),
		u.ID, u.Username, u.PasswordHash, textTime{&u.CreatedAt})
	if err != nil {
		return storageError("creating user "+u.Username, err)
	}
	return nil
}

// GetUser looks a user up by username.
func (b *Backend) GetUser(ctx context.Context, username string) (*types.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrTrackerDetached
	}

	var u types.User
	err := b.db.QueryRowContext(ctx, b.dialect.rebind(selectUser), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, textTime{&u.CreatedAt})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, types.ErrNotFound)
	}
	if err != nil {
		return nil, storageError("reading user "+username, err)
	}
	return &u, nil
}
