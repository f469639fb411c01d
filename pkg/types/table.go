package types

import (
	"context"
	"errors"
)

// Table provides uniform CRUD operations for a single entity type.
// Every method takes and returns pointers to the concrete entity struct
// (*Project, *TestPlan and so on) boxed in any; callers type-assert.
type Table interface {
	// Create validates the entity, assigns its ID and server-owned
	// timestamps, and stores it. Returns the stored record.
	Create(ctx context.Context, data any) (any, error)

	// List returns every row of the table in storage order.
	List(ctx context.Context) ([]any, error)

	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(ctx context.Context, id string) (any, error)

	// Update replaces the mutable fields of the entity with the given ID.
	// Updating an ID that does not exist changes nothing and returns the
	// submitted record, with creation timestamps set, without error.
	Update(ctx context.Context, id string, data any) (any, error)

	// Delete removes the entity with the given ID. Deleting an absent ID
	// succeeds.
	Delete(ctx context.Context, id string) error
}

// Table operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrConflict    = errors.New("entity already exists")
	ErrStorage     = errors.New("storage failure")
)
