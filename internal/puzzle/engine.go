// internal/puzzle/engine.go
//
// Puzzle engine: daily answer selection and guess evaluation.
//
// Responsibilities:
//   - Select the deterministic daily answer (pure function of the UTC epoch day).
//   - Re-select whenever the observed UTC calendar date advances.
//   - Select uniform random answers for repeat-play games.
//   - Score guesses with the classic two-pass algorithm (duplicate-safe).

package puzzle

import (
	crand "crypto/rand"
	"errors"
	"math/big"
	mrand "math/rand"
	"time"

	"github.com/rs/zerolog"
)

// ErrLengthMismatch is returned by Evaluate when guess and answer differ in length.
var ErrLengthMismatch = errors.New("guess length must equal answer length")

// Engine owns the dictionaries and the current daily puzzle.
// Not safe for concurrent use; the server loop is its single caller.
type Engine struct {
	dicts   *Dictionaries
	playDay int64  // epoch day the current daily answer was computed for
	daily   string // answer for playDay
	log     zerolog.Logger
}

// NewEngine builds an engine and computes the daily answer for now.
func NewEngine(dicts *Dictionaries, logger zerolog.Logger, now time.Time) *Engine {
	e := &Engine{dicts: dicts, log: logger}
	e.playDay = EpochDay(now)
	e.daily = dicts.DailyAnswer(e.playDay)
	e.log.Info().Int64("day", e.playDay).Msg("daily answer selected")
	return e
}

// Tick re-selects the daily answer when the UTC calendar date has advanced.
// Called once per server loop iteration so a stale date never keeps
// yesterday's answer.
func (e *Engine) Tick(now time.Time) {
	day := EpochDay(now)
	if day == e.playDay {
		return
	}
	e.playDay = day
	e.daily = e.dicts.DailyAnswer(day)
	e.log.Info().Int64("day", day).Msg("date changed, new daily answer selected")
}

// DailyAnswer returns the answer for the current UTC day.
func (e *Engine) DailyAnswer() string { return e.daily }

// PlayDay returns the epoch day the current daily answer belongs to.
func (e *Engine) PlayDay() int64 { return e.playDay }

// Dictionaries exposes the loaded word lists.
func (e *Engine) Dictionaries() *Dictionaries { return e.dicts }

// RandomAnswer returns a uniformly random answer from an unseeded source.
// Used for repeat-play games after the daily puzzle has been played.
func (e *Engine) RandomAnswer() string {
	n, _ := crand.Int(crand.Reader, big.NewInt(int64(len(e.dicts.answers))))
	return e.dicts.answers[n.Int64()]
}

// EpochDay returns the integer day count since the Unix epoch, in UTC.
func EpochDay(t time.Time) int64 {
	return t.UTC().Unix() / (24 * 60 * 60)
}

// DailyAnswer returns the deterministic answer for the given epoch day:
// same day, same word, across restarts.
func (d *Dictionaries) DailyAnswer(day int64) string {
	r := mrand.New(mrand.NewSource(day))
	return d.answers[r.Intn(len(d.answers))]
}

// Evaluate scores guess against answer, one Rating per letter.
//
// Pass 1: mark exact matches Correct; count every other answer letter as
// unmatched.
// Pass 2, left to right over non-Correct positions: if the guess letter still
// has unmatched answer occurrences, mark Present and consume one; otherwise
// mark Absent.
//
// The pass ordering makes duplicate letters come out right: a guess with two
// of a letter against an answer holding one marks only the earlier occurrence
// Present and the later one Absent.
func Evaluate(guess, answer string) ([]Rating, error) {
	// Lengths compare in runes, not bytes, so multi-byte letters cannot
	// slip past the check.
	g := []rune(guess)
	a := []rune(answer)
	if len(g) != len(a) {
		return nil, ErrLengthMismatch
	}
	res := make([]Rating, len(a))
	unmatched := make(map[rune]int)

	for i := range a {
		if g[i] == a[i] {
			res[i] = RatingCorrect
		} else {
			unmatched[a[i]]++
		}
	}
	for i := range a {
		if res[i] == RatingCorrect {
			continue
		}
		if unmatched[g[i]] > 0 {
			res[i] = RatingPresent
			unmatched[g[i]]--
		} else {
			res[i] = RatingAbsent
		}
	}
	return res, nil
}
