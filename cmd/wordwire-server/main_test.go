package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wordwire/wordwire/internal/config"
)

func TestLoadDictionariesConfig(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	guesses := filepath.Join(dir, "guesses.txt")
	if err := os.WriteFile(answers, []byte("crate\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(guesses, []byte("crane\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Both configured: loaded from disk.
	d, err := loadDictionaries(config.Server{AnswersFile: answers, GuessesFile: guesses})
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := d.Stats(); a != 1 {
		t.Fatalf("answers = %d, want 1", a)
	}

	// Neither configured: embedded defaults.
	d, err = loadDictionaries(config.Server{})
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := d.Stats(); a == 0 {
		t.Fatal("embedded defaults are empty")
	}

	// Only one of the pair configured: startup error, never a silent
	// fallback to the defaults.
	if _, err := loadDictionaries(config.Server{AnswersFile: answers}); err == nil {
		t.Fatal("answers-only config must fail")
	}
	if _, err := loadDictionaries(config.Server{GuessesFile: guesses}); err == nil {
		t.Fatal("guesses-only config must fail")
	}

	// Configured but unreadable: fatal, not a fallback.
	if _, err := loadDictionaries(config.Server{
		AnswersFile: filepath.Join(dir, "missing.txt"),
		GuessesFile: guesses,
	}); err == nil {
		t.Fatal("unreadable answers file must fail")
	}
}
