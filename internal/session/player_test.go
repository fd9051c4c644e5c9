package session

import (
	"testing"

	"github.com/wordwire/wordwire/internal/creds"
)

func TestDailyWinScoring(t *testing.T) {
	p := New("c1")
	p.Authenticate(creds.Record{Username: "alice", Alias: "Alice", Streak: 2, MaxStreak: 4})

	p.StartGame("CRATE", true, 3)
	p.SubmitGuess()
	p.SubmitGuess()
	p.SubmitGuess()
	p.EndGame(true)

	if p.Score != 3 {
		t.Errorf("score = %d, want 3", p.Score)
	}
	if p.Streak != 3 || p.MaxStreak != 4 {
		t.Errorf("streak = %d/%d, want 3/4", p.Streak, p.MaxStreak)
	}
	if p.WordlesSolved != 1 {
		t.Errorf("solved = %d, want 1", p.WordlesSolved)
	}
	if p.GuessHistogram[2] != 1 {
		t.Errorf("histogram = %v, want bucket 2 bumped", p.GuessHistogram)
	}
	if p.GameActive {
		t.Error("game still active after EndGame")
	}
}

func TestDailyWinExtendsMaxStreak(t *testing.T) {
	p := New("c1")
	p.Authenticate(creds.Record{Username: "alice", Streak: 4, MaxStreak: 4})
	p.StartGame("CRATE", true, 3)
	p.SubmitGuess()
	p.EndGame(true)
	if p.Streak != 5 || p.MaxStreak != 5 {
		t.Errorf("streak = %d/%d, want 5/5", p.Streak, p.MaxStreak)
	}
}

func TestDailyLossResetsStreakOnly(t *testing.T) {
	p := New("c1")
	p.Authenticate(creds.Record{Username: "alice", Score: 7, Streak: 5, MaxStreak: 5})
	p.StartGame("CRATE", true, 3)
	for i := 0; i < MaxGuesses; i++ {
		p.SubmitGuess()
	}
	p.EndGame(false)

	if p.Streak != 0 {
		t.Errorf("streak = %d, want 0 after daily loss", p.Streak)
	}
	if p.Score != 7 {
		t.Errorf("score = %d, want unchanged 7", p.Score)
	}
	if p.MaxStreak != 5 {
		t.Errorf("maxStreak = %d, want 5", p.MaxStreak)
	}
	if p.WordlesLost != 0 {
		t.Errorf("lost = %d, daily losses only reset the streak", p.WordlesLost)
	}
}

func TestRandomLossCostsOnePoint(t *testing.T) {
	p := New("c1")
	p.Authenticate(creds.Record{Username: "alice", Score: 2, Streak: 3})
	p.StartGame("CRATE", false, 1)
	for i := 0; i < MaxGuesses; i++ {
		p.SubmitGuess()
	}
	p.EndGame(false)

	if p.Score != 1 {
		t.Errorf("score = %d, want 1", p.Score)
	}
	if p.WordlesLost != 1 {
		t.Errorf("lost = %d, want 1", p.WordlesLost)
	}
	if p.Streak != 3 {
		t.Errorf("streak = %d, want untouched 3", p.Streak)
	}
}

func TestRandomLossFloorsAtZero(t *testing.T) {
	p := New("c1")
	p.Authenticate(creds.Record{Username: "alice", Score: 0})
	p.StartGame("CRATE", false, 1)
	p.SubmitGuess()
	p.EndGame(false)
	if p.Score != 0 {
		t.Errorf("score = %d, want floor at 0", p.Score)
	}
}

func TestRandomWinCountsLikeDaily(t *testing.T) {
	p := New("c1")
	p.Authenticate(creds.Record{Username: "alice"})
	p.StartGame("CRATE", false, 1)
	p.SubmitGuess()
	p.EndGame(true)

	if p.Score != 1 || p.WordlesSolved != 1 || p.GuessHistogram[0] != 1 {
		t.Errorf("random win not counted: score=%d solved=%d hist=%v",
			p.Score, p.WordlesSolved, p.GuessHistogram)
	}
	if p.Streak != 0 {
		t.Errorf("streak = %d, random games must not touch it", p.Streak)
	}
}

func TestGuessBudget(t *testing.T) {
	p := New("c1")
	p.StartGame("CRATE", true, 3)
	for i := 0; i < MaxGuesses; i++ {
		if !p.CanSubmitGuess() {
			t.Fatalf("guess %d refused with budget remaining", i+1)
		}
		p.SubmitGuess()
	}
	if p.CanSubmitGuess() {
		t.Error("guess allowed beyond the budget")
	}
	if p.GuessesMade > p.MaxGuesses {
		t.Errorf("guessesMade %d exceeds max %d", p.GuessesMade, p.MaxGuesses)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	p := New("c1")
	p.Authenticate(creds.Record{
		Username: "alice", Alias: "Alice", LastPlayDate: 19999,
		Score: 9, Streak: 2, MaxStreak: 6, WordlesSolved: 11, WordlesLost: 3,
		GuessHistogram: []int{0, 1, 4, 3, 2, 1},
	})
	rec := p.Record()
	if rec.Username != "alice" || rec.Score != 9 || rec.GuessHistogram[2] != 4 {
		t.Errorf("record round trip lost data: %+v", rec)
	}
	if rec.PasswordHash != "" {
		t.Error("session record must not carry a password hash")
	}
	snap := p.StatsSnapshot()
	if snap.Alias != "Alice" || snap.MaxStreak != 6 || len(snap.GuessHistogram) != MaxGuesses {
		t.Errorf("stats snapshot wrong: %+v", snap)
	}
}
