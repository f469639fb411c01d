// Package auth registers users and checks their credentials. Passwords are
// hashed with bcrypt; sessions are HS256 JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// HashCost is the bcrypt work factor for new passwords.
const HashCost = 10

// Gate registers users and verifies their credentials against a UserStore.
type Gate struct {
	users types.UserStore
}

func NewGate(users types.UserStore) *Gate {
	return &Gate{users: users}
}

// Register hashes password and stores a new user. Returns ErrValidation when
// either field is empty and ErrConflict when the username is taken.
func (g *Gate) Register(ctx context.Context, username, password string) (*types.User, error) {
	verr := &types.ValidationError{Entity: "user"}
	if username == "" {
		verr.Missing = append(verr.Missing, "username")
	}
	if password == "" {
		verr.Missing = append(verr.Missing, "password")
	}
	if len(verr.Missing) > 0 {
		return nil, verr
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return nil, fmt.Errorf("error encrypting password: %w", err)
	}

	u := &types.User{Username: username, PasswordHash: string(hashed)}
	if err := g.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login reports whether password matches the stored hash for username.
// An unknown username is ErrInvalidCredentials; a wrong password is
// (false, nil).
func (g *Gate) Login(ctx context.Context, username, password string) (bool, error) {
	u, err := g.users.GetUser(ctx, username)
	if errors.Is(err, types.ErrNotFound) {
		return false, fmt.Errorf("%w: unknown user %q", types.ErrInvalidCredentials, username)
	}
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("comparing password for %q: %w", username, err)
	}
	return true, nil
}
