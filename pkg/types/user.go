package types

import "time"

// User is an account known to the auth gate. PasswordHash holds the bcrypt
// hash; the plaintext password is never stored.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
