package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

func TestUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	u := &types.User{Username: "alice", PasswordHash: "$2a$10$hash"}
	require.NoError(t, b.CreateUser(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := b.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)

	_, err = b.GetUser(ctx, "bob")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUsers_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	require.NoError(t, b.CreateUser(ctx, &types.User{Username: "alice", PasswordHash: "h1"}))
	err := b.CreateUser(ctx, &types.User{Username: "alice", PasswordHash: "h2"})
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.NotErrorIs(t, err, types.ErrStorage)
}
