package puzzle

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func ratingsEqual(a, b []Rating) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name   string
		guess  string
		answer string
		want   []Rating
	}{
		{
			name:  "no duplicates",
			guess: "CRANE", answer: "CRATE",
			want: []Rating{RatingCorrect, RatingCorrect, RatingCorrect, RatingAbsent, RatingCorrect},
		},
		{
			name:  "exact match",
			guess: "CRATE", answer: "CRATE",
			want: []Rating{RatingCorrect, RatingCorrect, RatingCorrect, RatingCorrect, RatingCorrect},
		},
		{
			name:  "duplicate guess letter with single occurrence in answer",
			guess: "ALLEY", answer: "EAGLE",
			// One L in the answer: only the earlier L may be Present.
			want: []Rating{RatingPresent, RatingPresent, RatingAbsent, RatingPresent, RatingAbsent},
		},
		{
			name:  "duplicates on both sides",
			guess: "SPEED", answer: "ERASE",
			want: []Rating{RatingPresent, RatingAbsent, RatingPresent, RatingPresent, RatingAbsent},
		},
		{
			name:  "earlier duplicate wins left to right",
			guess: "SPEED", answer: "SPINE",
			want: []Rating{RatingCorrect, RatingCorrect, RatingPresent, RatingAbsent, RatingAbsent},
		},
		{
			name:  "nothing matches",
			guess: "JUMBO", answer: "CRATE",
			want: []Rating{RatingAbsent, RatingAbsent, RatingAbsent, RatingAbsent, RatingAbsent},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.guess, tc.answer)
			if err != nil {
				t.Fatalf("Evaluate(%q, %q): %v", tc.guess, tc.answer, err)
			}
			if len(got) != len(tc.answer) {
				t.Fatalf("got %d ratings, want %d", len(got), len(tc.answer))
			}
			if !ratingsEqual(got, tc.want) {
				t.Errorf("Evaluate(%q, %q) = %v, want %v", tc.guess, tc.answer, got, tc.want)
			}
		})
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	if _, err := Evaluate("CAT", "CRATE"); err != ErrLengthMismatch {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	// Multi-byte letters: equal byte lengths, unequal letter counts.
	if _, err := Evaluate("ÉÉ", "ABCD"); err != ErrLengthMismatch {
		t.Fatalf("expected ErrLengthMismatch for rune-count mismatch, got %v", err)
	}

	// Equal rune counts with multi-byte letters still evaluate.
	rs, err := Evaluate("ÉA", "AÉ")
	if err != nil {
		t.Fatal(err)
	}
	if !ratingsEqual(rs, []Rating{RatingPresent, RatingPresent}) {
		t.Fatalf("ratings = %v, want both Present", rs)
	}
}

func TestEvaluateCorrectCount(t *testing.T) {
	guess, answer := "SLATE", "STALE"
	got, err := Evaluate(guess, answer)
	if err != nil {
		t.Fatal(err)
	}
	wantCorrect := 0
	for i := range answer {
		if guess[i] == answer[i] {
			wantCorrect++
		}
	}
	correct := 0
	for _, r := range got {
		if r == RatingCorrect {
			correct++
		}
	}
	if correct != wantCorrect {
		t.Errorf("got %d Correct ratings, want %d", correct, wantCorrect)
	}
}

func TestDailyAnswerDeterministic(t *testing.T) {
	dicts, err := DefaultDictionaries()
	if err != nil {
		t.Fatal(err)
	}
	for day := int64(20000); day < 20010; day++ {
		if a, b := dicts.DailyAnswer(day), dicts.DailyAnswer(day); a != b {
			t.Fatalf("day %d: %q != %q", day, a, b)
		}
	}
}

func TestDailyAnswerSpread(t *testing.T) {
	dicts, err := DefaultDictionaries()
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]struct{})
	for day := int64(19000); day < 20000; day++ {
		seen[dicts.DailyAnswer(day)] = struct{}{}
	}
	answers, _ := dicts.Stats()
	if len(seen) < answers/2 {
		t.Errorf("1000 days selected only %d of %d answers", len(seen), answers)
	}
}

func TestEngineTickRollsTheDay(t *testing.T) {
	dicts, err := DefaultDictionaries()
	if err != nil {
		t.Fatal(err)
	}
	day1 := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)

	e := NewEngine(dicts, zerolog.Nop(), day1)
	if e.PlayDay() != EpochDay(day1) {
		t.Fatalf("play day %d, want %d", e.PlayDay(), EpochDay(day1))
	}
	want1 := dicts.DailyAnswer(EpochDay(day1))
	if e.DailyAnswer() != want1 {
		t.Fatalf("daily answer %q, want %q", e.DailyAnswer(), want1)
	}

	// Same day: nothing changes.
	e.Tick(day1.Add(30 * time.Second))
	if e.PlayDay() != EpochDay(day1) {
		t.Fatal("tick within the same day changed the play day")
	}

	// Midnight passed: new day, new answer (deterministically).
	e.Tick(day2)
	if e.PlayDay() != EpochDay(day2) {
		t.Fatalf("play day %d after rollover, want %d", e.PlayDay(), EpochDay(day2))
	}
	if want2 := dicts.DailyAnswer(EpochDay(day2)); e.DailyAnswer() != want2 {
		t.Fatalf("daily answer %q after rollover, want %q", e.DailyAnswer(), want2)
	}
}

func TestRandomAnswerIsAnAnswer(t *testing.T) {
	dicts, err := DefaultDictionaries()
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(dicts, zerolog.Nop(), time.Now())
	for i := 0; i < 20; i++ {
		if w := e.RandomAnswer(); !dicts.IsAnswer(w) {
			t.Fatalf("RandomAnswer returned non-answer %q", w)
		}
	}
}
