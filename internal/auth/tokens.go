package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const usernameKey = "username"

// Tokens issues and verifies session tokens.
type Tokens struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{auth: jwtauth.New("HS256", secret, nil), ttl: ttl}
}

// Issue returns a signed token for username that expires after the TTL.
func (m *Tokens) Issue(username string) (string, error) {
	claims := map[string]interface{}{
		usernameKey: username,
		"exp":       time.Now().Add(m.ttl),
	}
	_, token, err := m.auth.Encode(claims)
	if err != nil {
		slog.Error("error generating jwt", "error", err)
		return "", fmt.Errorf("error generating session token: %w", err)
	}
	return token, nil
}

// Verify parses token and returns the username it was issued for.
func (m *Tokens) Verify(token string) (string, error) {
	t, err := jwtauth.VerifyToken(m.auth, token)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return usernameFromClaims(t.PrivateClaims())
}

// Verifier finds a bearer token on the request and stores it in the context.
func (m *Tokens) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(m.auth)
}

// Authenticator rejects requests whose token is missing or invalid with 401.
func (m *Tokens) Authenticator() func(http.Handler) http.Handler {
	return jwtauth.Authenticator(m.auth)
}

// UsernameFromRequest returns the username of a request that passed the
// Verifier.
func UsernameFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", fmt.Errorf("error retrieving auth claims: %w", err)
	}
	return usernameFromClaims(claims)
}

func usernameFromClaims(claims map[string]interface{}) (string, error) {
	raw, ok := claims[usernameKey]
	if !ok {
		return "", fmt.Errorf("invalid token: unable to locate key %v in claims", usernameKey)
	}
	username, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid token: value for key %v has invalid type", usernameKey)
	}
	return username, nil
}
