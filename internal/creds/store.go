// internal/creds/store.go
//
// Credential and stats persistence, keyed by username.
// The server core only sees this interface; implementations may be backed
// by SQLite (sqlite.go), memory (memory.go), or anything else.

package creds

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned by Load when no record exists for the username.
var ErrNotFound = errors.New("player record not found")

// ErrUsernameTaken is returned by CreateUser on a duplicate username.
var ErrUsernameTaken = errors.New("username taken")

// Record is one player's stored credentials and lifetime stats.
type Record struct {
	Username       string
	Alias          string
	PasswordHash   string
	LastPlayDate   int64 // epoch day of the last daily game started
	Score          int
	Streak         int
	MaxStreak      int
	WordlesSolved  int
	WordlesLost    int
	GuessHistogram []int
}

// Store persists player records.
type Store interface {
	// Load retrieves the record for username, or ErrNotFound.
	Load(ctx context.Context, username string) (Record, error)

	// Save inserts or updates the record (keyed by Record.Username).
	Save(ctx context.Context, rec Record) error

	// CreateUser hashes the password and inserts a fresh record, or
	// ErrUsernameTaken.
	CreateUser(ctx context.Context, username, alias, password string) error
}

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword verifies a plaintext password against a stored hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
