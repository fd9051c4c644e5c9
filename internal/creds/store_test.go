package creds

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Load(ctx, "alice"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec := Record{Username: "alice", Alias: "Alice", PasswordHash: "h", Score: 5,
		GuessHistogram: []int{1, 0, 2, 0, 0, 0}}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "ALICE") // usernames are case-insensitive
	if err != nil {
		t.Fatal(err)
	}
	if got.Alias != "Alice" || got.Score != 5 || got.GuessHistogram[2] != 2 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	// Stat updates with an empty hash keep the stored one.
	rec.PasswordHash = ""
	rec.Score = 6
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Load(ctx, "alice")
	if got.PasswordHash != "h" || got.Score != 6 {
		t.Fatalf("empty-hash save must keep the password: %+v", got)
	}

	if err := s.CreateUser(ctx, "ALICE", "A", "pw123456"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v", err)
	}
	if err := s.CreateUser(ctx, "bob", "Bob", "pw123456"); err != nil {
		t.Fatal(err)
	}
	bob, err := s.Load(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(bob.PasswordHash, "pw123456") {
		t.Error("created hash does not verify")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.db")
	s, err := OpenSQLite(path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	if _, err := s.Load(ctx, "alice"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.CreateUser(ctx, "alice", "Alice", "secret123"); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser(ctx, "Alice", "Other", "secret123"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v", err)
	}

	rec, err := s.Load(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(rec.PasswordHash, "secret123") {
		t.Fatal("stored hash does not verify")
	}

	// Update stats without touching the credential.
	rec.PasswordHash = ""
	rec.Score = 12
	rec.Streak = 3
	rec.GuessHistogram = []int{0, 1, 2, 3, 0, 0}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "ALICE")
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 12 || got.Streak != 3 || got.GuessHistogram[3] != 3 {
		t.Fatalf("update lost data: %+v", got)
	}
	if !CheckPassword(got.PasswordHash, "secret123") {
		t.Fatal("stat update wiped the password hash")
	}
}
