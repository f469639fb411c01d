package types

import (
	"context"
	"errors"
)

// UserStore persists accounts for the auth gate.
type UserStore interface {
	// CreateUser stores u, assigning its ID and CreatedAt.
	// Returns ErrConflict if the username is taken.
	CreateUser(ctx context.Context, u *User) error

	// GetUser returns the user with the given username, or ErrNotFound.
	GetUser(ctx context.Context, username string) (*User, error)
}

// Tracker is the storage handle behind every surface of the system.
// Callers attach to a backend, access tables by name, and detach when done.
type Tracker interface {
	UserStore

	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Metrics aggregates test outcomes and defect resolution per project.
	Metrics(ctx context.Context) ([]ProjectMetrics, error)

	// Attach connects the Tracker to the backend described by config and
	// creates the schema when it is missing. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrTrackerDetached.
	Detach() error
}

// Tracker lifecycle errors.
var (
	ErrTrackerDetached = errors.New("tracker is detached")
	ErrAlreadyAttached = errors.New("tracker is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
