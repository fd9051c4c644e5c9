// internal/session/player.go
//
// Server-side per-connection session record.
//
// Responsibilities:
//   - Identity and authentication flag for one connection.
//   - Persisted stats loaded at login, written back after each finished game.
//   - Active-game fields (current answer, guess budget, daily flag, reward).
//   - Scoring and streak bookkeeping tied to calendar-day semantics.

package session

import (
	"github.com/wordwire/wordwire/internal/creds"
	"github.com/wordwire/wordwire/internal/protocol"
)

// MaxGuesses is the fixed guess limit per game.
const MaxGuesses = 6

// Player is the authoritative session state for one connection.
// Created on connect, destroyed on disconnect. Mutated only by the
// single-threaded server loop.
type Player struct {
	ConnID        string
	Username      string
	Alias         string
	Authenticated bool

	// Persisted stats, loaded from the credential store at login.
	LastPlayDate   int64 // epoch day of the last daily game started
	Score          int
	Streak         int
	MaxStreak      int
	WordlesSolved  int
	WordlesLost    int
	GuessHistogram []int // indexed by guesses-to-solve - 1

	// Active-game fields, valid while GameActive.
	GameActive    bool
	CurrentAnswer string
	GuessesMade   int
	MaxGuesses    int
	IsDailyGame   bool
	PointsIfWon   int
}

// New creates an unauthenticated session for a fresh connection.
func New(connID string) *Player {
	return &Player{
		ConnID:         connID,
		MaxGuesses:     MaxGuesses,
		GuessHistogram: make([]int, MaxGuesses),
	}
}

// Authenticate marks the session authenticated and loads persisted stats.
func (p *Player) Authenticate(rec creds.Record) {
	p.Authenticated = true
	p.Username = rec.Username
	p.Alias = rec.Alias
	p.LastPlayDate = rec.LastPlayDate
	p.Score = rec.Score
	p.Streak = rec.Streak
	p.MaxStreak = rec.MaxStreak
	p.WordlesSolved = rec.WordlesSolved
	p.WordlesLost = rec.WordlesLost
	if len(rec.GuessHistogram) == MaxGuesses {
		p.GuessHistogram = append([]int(nil), rec.GuessHistogram...)
	}
}

// StartGame begins a new game against the given answer.
func (p *Player) StartGame(answer string, daily bool, pointsIfWon int) {
	p.GameActive = true
	p.CurrentAnswer = answer
	p.GuessesMade = 0
	p.MaxGuesses = MaxGuesses
	p.IsDailyGame = daily
	p.PointsIfWon = pointsIfWon
}

// CanSubmitGuess reports whether another guess is allowed.
func (p *Player) CanSubmitGuess() bool {
	return p.GameActive && p.GuessesMade < p.MaxGuesses
}

// SubmitGuess counts a guess against the budget.
func (p *Player) SubmitGuess() {
	p.GuessesMade++
}

// RemainingGuesses returns how many guesses are left in the active game.
func (p *Player) RemainingGuesses() int {
	return p.MaxGuesses - p.GuessesMade
}

// EndGame applies the scoring policy and clears the active game.
//
// Win: score += PointsIfWon, solved count and histogram bucket bump; a daily
// win extends the streak (and the max streak high-water mark).
// Loss: a daily loss resets the streak to zero; a random loss costs one point
// (floored at zero) and counts as lost. Random losses never touch the streak.
func (p *Player) EndGame(won bool) {
	if won {
		p.Score += p.PointsIfWon
		p.WordlesSolved++
		if p.GuessesMade >= 1 && p.GuessesMade <= len(p.GuessHistogram) {
			p.GuessHistogram[p.GuessesMade-1]++
		}
		if p.IsDailyGame {
			p.Streak++
			if p.Streak > p.MaxStreak {
				p.MaxStreak = p.Streak
			}
		}
	} else {
		if p.IsDailyGame {
			p.Streak = 0
		} else if p.Score > 0 {
			p.Score--
			p.WordlesLost++
		}
	}
	p.GameActive = false
	p.CurrentAnswer = ""
	p.IsDailyGame = false
	p.PointsIfWon = 0
}

// Record converts the session's persisted fields back into a store record.
// The password hash is filled in by the caller (the store keeps it).
func (p *Player) Record() creds.Record {
	return creds.Record{
		Username:       p.Username,
		Alias:          p.Alias,
		LastPlayDate:   p.LastPlayDate,
		Score:          p.Score,
		Streak:         p.Streak,
		MaxStreak:      p.MaxStreak,
		WordlesSolved:  p.WordlesSolved,
		WordlesLost:    p.WordlesLost,
		GuessHistogram: append([]int(nil), p.GuessHistogram...),
	}
}

// StatsSnapshot builds the stats response for this session.
func (p *Player) StatsSnapshot() protocol.StatsResponse {
	return protocol.StatsResponse{
		Alias:          p.Alias,
		LastPlayDate:   p.LastPlayDate,
		Score:          p.Score,
		Streak:         p.Streak,
		MaxStreak:      p.MaxStreak,
		WordlesSolved:  p.WordlesSolved,
		WordlesLost:    p.WordlesLost,
		GuessHistogram: append([]int(nil), p.GuessHistogram...),
	}
}
