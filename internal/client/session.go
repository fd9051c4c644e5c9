// internal/client/session.go
//
// Client-side model of the game in progress: the guess being typed, the
// guesses already submitted with their ratings, and the best-known rating
// per letter for keyboard coloring. Discarded when the next game starts.

package client

import (
	"strings"

	"github.com/wordwire/wordwire/internal/puzzle"
)

// GameSession mirrors one game as announced by the server.
type GameSession struct {
	answerLength int
	maxGuesses   int

	unsubmitted string
	submitted   []string
	ratings     [][]puzzle.Rating

	letterBest map[rune]puzzle.Rating
}

// NewGameSession sizes a fresh session to the announced dimensions.
func NewGameSession(answerLength, maxGuesses int) *GameSession {
	return &GameSession{
		answerLength: answerLength,
		maxGuesses:   maxGuesses,
		letterBest:   make(map[rune]puzzle.Rating),
	}
}

// AddLetter appends one letter to the unsubmitted guess, upper-cased and
// bounded to the answer length. Reports whether anything changed.
func (s *GameSession) AddLetter(r rune) bool {
	if len([]rune(s.unsubmitted)) >= s.answerLength {
		return false
	}
	s.unsubmitted = strings.ToUpper(s.unsubmitted + string(r))
	return true
}

// RemoveLetter drops the last letter of the unsubmitted guess.
func (s *GameSession) RemoveLetter() bool {
	if s.unsubmitted == "" {
		return false
	}
	rs := []rune(s.unsubmitted)
	s.unsubmitted = string(rs[:len(rs)-1])
	return true
}

// Unsubmitted returns the guess currently being typed.
func (s *GameSession) Unsubmitted() string { return s.unsubmitted }

// CanSubmit reports whether the unsubmitted guess is complete and the guess
// budget is not exhausted.
func (s *GameSession) CanSubmit() bool {
	return len([]rune(s.unsubmitted)) == s.answerLength && s.RemainingGuesses() > 0
}

// Apply records the server's ratings for the unsubmitted guess, merges them
// into the letter states, and clears the input.
func (s *GameSession) Apply(ratings []puzzle.Rating) {
	word := s.unsubmitted
	s.submitted = append(s.submitted, word)
	s.ratings = append(s.ratings, ratings)
	for i, r := range []rune(word) {
		if i >= len(ratings) {
			break
		}
		// Keep the best rating ever observed for the letter.
		if best, ok := s.letterBest[r]; !ok || ratings[i] > best {
			s.letterBest[r] = ratings[i]
		}
	}
	s.unsubmitted = ""
}

// Submitted returns the guesses accepted so far, in order.
func (s *GameSession) Submitted() []string { return s.submitted }

// Ratings returns one rating row per submitted guess.
func (s *GameSession) Ratings() [][]puzzle.Rating { return s.ratings }

// LetterBest returns the best-known rating for a letter, if any guess has
// used it.
func (s *GameSession) LetterBest(r rune) (puzzle.Rating, bool) {
	rating, ok := s.letterBest[r]
	return rating, ok
}

// GuessesMade returns how many guesses were accepted.
func (s *GameSession) GuessesMade() int { return len(s.submitted) }

// RemainingGuesses returns how many guesses are left.
func (s *GameSession) RemainingGuesses() int { return s.maxGuesses - len(s.submitted) }

// AnswerLength returns the announced word length.
func (s *GameSession) AnswerLength() int { return s.answerLength }

// MaxGuesses returns the announced guess limit.
func (s *GameSession) MaxGuesses() int { return s.maxGuesses }
