package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/qatrack/internal/sqlite"
	"github.com/mesh-intelligence/qatrack/pkg/types"
)

func newTestGate(t *testing.T) (*Gate, *sqlite.Backend) {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return NewGate(b), b
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	gate, store := newTestGate(t)

	u, err := gate.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	stored, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash, "plaintext is never stored")
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, HashCost)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	gate, _ := newTestGate(t)

	_, err := gate.Register(ctx, "alice", "one")
	require.NoError(t, err)
	_, err = gate.Register(ctx, "alice", "two")
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestRegister_EmptyFields(t *testing.T) {
	gate, _ := newTestGate(t)
	tests := []struct {
		name, username, password string
		missing                  []string
	}{
		{"no username", "", "pw", []string{"username"}},
		{"no password", "bob", "", []string{"password"}},
		{"nothing", "", "", []string{"username", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Register(context.Background(), tt.username, tt.password)
			require.ErrorIs(t, err, types.ErrValidation)
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Missing)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	gate, _ := newTestGate(t)
	_, err := gate.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	ok, err := gate.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Login(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.Login(ctx, "mallory", "s3cret")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	assert.False(t, ok)
}
