// internal/server/logic.go
//
// Authoritative session dispatcher.
//
// Responsibilities:
//   - One session.Player per connection, created on connect and destroyed
//     on disconnect.
//   - Message-type dispatch gated by the session's authenticated flag: any
//     non-login message from an unauthenticated connection is logged and
//     dropped, never queued.
//   - Game lifecycle: daily-vs-random start decision, guess validation and
//     scoring, win/loss settlement, stats snapshots.
//
// All methods are called from the single loop goroutine (loop.go); no state
// here needs locking.

package server

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/config"
	"github.com/wordwire/wordwire/internal/creds"
	"github.com/wordwire/wordwire/internal/protocol"
	"github.com/wordwire/wordwire/internal/puzzle"
	"github.com/wordwire/wordwire/internal/session"
)

// Sender delivers server messages to a connection. Implemented by the
// websocket transport; tests substitute a recording fake.
type Sender interface {
	// Send delivers msg to the connection, best effort.
	Send(connID string, msg protocol.ServerMessage)

	// CloseConn terminates the connection.
	CloseConn(connID string)
}

// Logic is the server-side session state machine.
type Logic struct {
	cfg      config.Server
	engine   *puzzle.Engine
	store    creds.Store
	sender   Sender
	sessions map[string]*session.Player
	log      zerolog.Logger
}

// NewLogic constructs the dispatcher. AttachSender must be called before the
// loop starts delivering messages.
func NewLogic(cfg config.Server, engine *puzzle.Engine, store creds.Store, logger zerolog.Logger) *Logic {
	return &Logic{
		cfg:      cfg,
		engine:   engine,
		store:    store,
		sessions: make(map[string]*session.Player),
		log:      logger,
	}
}

// AttachSender wires the outbound transport. Separate from the constructor
// because transport and logic reference each other.
func (l *Logic) AttachSender(s Sender) { l.sender = s }

// Engine exposes the puzzle engine (the loop ticks it each iteration).
func (l *Logic) Engine() *puzzle.Engine { return l.engine }

// Connect registers a fresh unauthenticated session.
func (l *Logic) Connect(connID string) {
	l.sessions[connID] = session.New(connID)
	l.log.Info().Str("conn", connID).Msg("connection registered")
}

// Disconnect destroys the session. An in-progress game is simply dropped;
// no loss is applied.
func (l *Logic) Disconnect(connID string) {
	delete(l.sessions, connID)
	l.log.Info().Str("conn", connID).Msg("connection removed")
}

// Dispatch routes one inbound message to its handler. Out-of-phase and
// malformed messages degrade to a logged no-op or a negative response;
// nothing here panics the loop.
func (l *Logic) Dispatch(connID string, msg protocol.ClientMessage) {
	p, ok := l.sessions[connID]
	if !ok {
		l.log.Warn().Str("conn", connID).Msg("message from unknown connection")
		return
	}
	if _, isLogin := msg.(protocol.Login); !isLogin && !p.Authenticated {
		l.log.Warn().Str("conn", connID).Msg("blocked message from unauthenticated connection")
		return
	}

	switch m := msg.(type) {
	case protocol.Login:
		l.handleLogin(p, m)
	case protocol.StartGame:
		l.handleStartGame(p)
	case protocol.Guess:
		l.handleGuess(p, m)
	case protocol.StatsRequest:
		l.handleStats(p)
	default:
		l.log.Warn().Str("conn", connID).Msgf("unhandled message %T", msg)
	}
}

// handleLogin authenticates the connection against the credential store.
// A bad credential or store failure closes the connection instead of
// leaving it pending.
func (l *Logic) handleLogin(p *session.Player, msg protocol.Login) {
	if p.Authenticated {
		l.log.Warn().Str("conn", p.ConnID).Msg("login on authenticated connection ignored")
		return
	}
	l.log.Info().Str("conn", p.ConnID).Str("username", msg.Username).Msg("authentication attempt")

	rec, err := l.store.Load(context.Background(), msg.Username)
	if err != nil {
		// Store failures are treated the same as unknown users.
		l.log.Warn().Err(err).Str("conn", p.ConnID).Str("username", msg.Username).
			Msg("authentication failed")
		l.sender.CloseConn(p.ConnID)
		return
	}
	if !creds.CheckPassword(rec.PasswordHash, msg.Password) {
		l.log.Warn().Str("conn", p.ConnID).Str("username", msg.Username).
			Msg("authentication failed: wrong password")
		l.sender.CloseConn(p.ConnID)
		return
	}

	p.Authenticate(rec)
	l.log.Info().Str("conn", p.ConnID).Str("username", p.Username).Msg("authenticated")
	l.sender.Send(p.ConnID, protocol.LoginResponse{Alias: p.Alias})
}

// handleStartGame starts the daily puzzle if this session has not played it
// today, otherwise a random repeat-play game. Ignored while a game is active.
func (l *Logic) handleStartGame(p *session.Player) {
	if p.GameActive {
		l.log.Warn().Str("conn", p.ConnID).Str("username", p.Username).
			Msg("start ignored: game already active")
		return
	}

	if p.LastPlayDate != l.engine.PlayDay() {
		p.LastPlayDate = l.engine.PlayDay()
		p.StartGame(l.engine.DailyAnswer(), true, l.cfg.PointsDaily)
		l.log.Info().Str("conn", p.ConnID).Str("username", p.Username).
			Int64("day", p.LastPlayDate).Msg("daily game started")
		l.persist(p)
	} else {
		p.StartGame(l.engine.RandomAnswer(), false, l.cfg.PointsRandom)
		l.log.Info().Str("conn", p.ConnID).Str("username", p.Username).
			Msg("random game started")
	}

	l.sender.Send(p.ConnID, protocol.StartGameResponse{
		AnswerLength: len(p.CurrentAnswer),
		MaxGuesses:   p.MaxGuesses,
	})
}

// handleGuess validates and scores one guess. Rejections (no active game,
// budget exhausted, invalid word) get a negative response with no ratings.
func (l *Logic) handleGuess(p *session.Player, msg protocol.Guess) {
	word := strings.ToUpper(strings.TrimSpace(msg.Word))

	if !p.CanSubmitGuess() || !l.engine.Dictionaries().IsValidGuess(word) {
		l.log.Warn().Str("conn", p.ConnID).Str("username", p.Username).
			Str("guess", word).Msg("guess rejected")
		l.sender.Send(p.ConnID, protocol.GuessResponse{Accepted: false, Ratings: []puzzle.Rating{}})
		return
	}

	p.SubmitGuess()
	ratings, err := puzzle.Evaluate(word, p.CurrentAnswer)
	if err != nil {
		// Dictionary words all share one length, so this would mean the word
		// lists disagree with the active game. Reject rather than crash.
		l.log.Error().Err(err).Str("conn", p.ConnID).Str("guess", word).Msg("evaluation failed")
		l.sender.Send(p.ConnID, protocol.GuessResponse{Accepted: false, Ratings: []puzzle.Rating{}})
		return
	}

	l.log.Info().Str("conn", p.ConnID).Str("username", p.Username).Str("guess", word).
		Int("remaining", p.RemainingGuesses()).Msg("guess accepted")
	l.sender.Send(p.ConnID, protocol.GuessResponse{Accepted: true, Ratings: ratings})

	if puzzle.AllCorrect(ratings) {
		l.log.Info().Str("conn", p.ConnID).Str("username", p.Username).Msg("puzzle solved")
		l.endGame(p, true)
	} else if p.RemainingGuesses() == 0 {
		l.log.Info().Str("conn", p.ConnID).Str("username", p.Username).Msg("guesses exhausted")
		l.endGame(p, false)
	}
}

// endGame settles scoring exactly once and writes the session back to the
// credential store.
func (l *Logic) endGame(p *session.Player, won bool) {
	p.EndGame(won)
	l.persist(p)
}

// handleStats emits the session's stats snapshot.
func (l *Logic) handleStats(p *session.Player) {
	l.sender.Send(p.ConnID, p.StatsSnapshot())
}

// persist writes the session's stats back to the store, best effort. The
// record's password hash is left empty so the store keeps the existing one.
func (l *Logic) persist(p *session.Player) {
	if err := l.store.Save(context.Background(), p.Record()); err != nil {
		l.log.Warn().Err(err).Str("username", p.Username).Msg("persist player record")
	}
}
