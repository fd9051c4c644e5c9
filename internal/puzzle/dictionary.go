// internal/puzzle/dictionary.go
//
// Word list management for the puzzle engine.
//
// Responsibilities:
//   - Load answer and guess lists from configured files or fall back to
//     embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Normalize words: trimmed, upper-cased, one token per line.
//
// Word lists:
//   - "answers": candidate solutions.
//   - "guesses": words accepted as input; always includes every answer.

package puzzle

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

// Embedded tiny defaults so the server runs without configured files.

//go:embed default_answers.txt
var embeddedAnswers string

//go:embed default_guesses.txt
var embeddedGuesses string

// Dictionaries holds the immutable word lists loaded at startup.
type Dictionaries struct {
	answers    []string
	answerSet  map[string]struct{}
	guessSet   map[string]struct{} // answers ∪ guesses
	wordLength int
}

// LoadDictionaries reads both word lists from disk. An unreadable file is an
// unrecoverable startup error. Every answer is also registered as a valid
// guess.
func LoadDictionaries(answersPath, guessesPath string) (*Dictionaries, error) {
	answers, err := readWordList(answersPath)
	if err != nil {
		return nil, fmt.Errorf("load answers %s: %w", answersPath, err)
	}
	guesses, err := readWordList(guessesPath)
	if err != nil {
		return nil, fmt.Errorf("load guesses %s: %w", guessesPath, err)
	}
	return newDictionaries(answers, guesses)
}

// DefaultDictionaries builds the dictionary set from the embedded lists.
func DefaultDictionaries() (*Dictionaries, error) {
	return newDictionaries(normalizeLines(embeddedAnswers), normalizeLines(embeddedGuesses))
}

func newDictionaries(answers, guesses []string) (*Dictionaries, error) {
	if len(answers) == 0 {
		return nil, errors.New("answers list is empty")
	}
	d := &Dictionaries{
		answers:    answers,
		answerSet:  toSet(answers),
		guessSet:   toSet(answers),
		wordLength: len(answers[0]),
	}
	for _, w := range guesses {
		d.guessSet[w] = struct{}{}
	}
	return d, nil
}

// readWordList loads one word per line, trimmed and upper-cased.
// Blank lines and #-comments are skipped.
func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := normalizeWord(sc.Text()); w != "" {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into word form.
func normalizeLines(s string) []string {
	return lo.FilterMap(strings.Split(s, "\n"), func(line string, _ int) (string, bool) {
		w := normalizeWord(line)
		return w, w != ""
	})
}

// normalizeWord applies the canonical word normalization: trim + upper-case.
func normalizeWord(s string) string {
	w := strings.ToUpper(strings.TrimSpace(s))
	if w == "" || strings.HasPrefix(w, "#") {
		return ""
	}
	return w
}

// toSet converts a list of words into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// IsValidGuess reports whether w is accepted as input (case-insensitive).
func (d *Dictionaries) IsValidGuess(w string) bool {
	_, ok := d.guessSet[normalizeWord(w)]
	return ok
}

// IsAnswer reports whether w is a candidate solution.
func (d *Dictionaries) IsAnswer(w string) bool {
	_, ok := d.answerSet[normalizeWord(w)]
	return ok
}

// WordLength returns the length of the answer words.
func (d *Dictionaries) WordLength() int { return d.wordLength }

// Stats returns counts of loaded words: (answers, valid guesses).
func (d *Dictionaries) Stats() (answerCount, guessCount int) {
	return len(d.answers), len(d.guessSet)
}
