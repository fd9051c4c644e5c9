// internal/puzzle/rating.go
//
// Core type definitions for guess evaluation.
// Defines:
//   - Rating: per-letter verdict of a guess against the answer.

package puzzle

import (
	"encoding/json"
	"fmt"
)

// Rating is the per-letter verdict of a guess against the current answer.
// Ordering matters: Absent < Present < Correct. The keyboard letter state
// on the client keeps the best rating ever observed for each letter, so
// a higher value always wins a merge.
type Rating uint8

const (
	// RatingAbsent means the letter does not occur in the answer (or all
	// its occurrences are already consumed by better-rated positions).
	RatingAbsent Rating = iota
	// RatingPresent means the letter occurs in the answer at a different slot.
	RatingPresent
	// RatingCorrect means the letter is in the right slot.
	RatingCorrect
)

// String returns the wire name of the rating.
func (r Rating) String() string {
	switch r {
	case RatingCorrect:
		return "correct"
	case RatingPresent:
		return "present"
	default:
		return "absent"
	}
}

// MarshalJSON encodes the rating as its wire name.
func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a wire name back into a Rating.
func (r *Rating) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "correct":
		*r = RatingCorrect
	case "present":
		*r = RatingPresent
	case "absent":
		*r = RatingAbsent
	default:
		return fmt.Errorf("unknown rating %q", s)
	}
	return nil
}

// AllCorrect reports whether every rating in rs is RatingCorrect.
func AllCorrect(rs []Rating) bool {
	for _, r := range rs {
		if r != RatingCorrect {
			return false
		}
	}
	return len(rs) > 0
}
