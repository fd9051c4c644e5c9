// internal/client/logic.go
//
// Client-side protocol state machine.
//
// The machine mirrors the server's session protocol so the UI can react to
// responses without re-deriving game rules. States: Initial → Guessing →
// GameOver ⇄ Stats. Each state subscribes to the event broker only while
// active, so stale states never see input events after a transition.
//
// Server messages arrive on the single update goroutine via HandleServer;
// input events arrive through the broker from the same goroutine.

package client

import (
	"unicode"

	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/config"
	"github.com/wordwire/wordwire/internal/protocol"
	"github.com/wordwire/wordwire/internal/puzzle"
)

// Sender transmits client messages to the server. Implemented by the
// websocket dialer; tests substitute a recording fake.
type Sender interface {
	Send(msg protocol.ClientMessage) error
}

// Logic drives the client protocol state machine.
type Logic struct {
	cfg     config.Client
	sender  Sender
	broker  *Broker
	session *GameSession
	state   state
	log     zerolog.Logger
}

// NewLogic constructs the machine in its initial state (waiting for the
// connection acknowledgement).
func NewLogic(cfg config.Client, sender Sender, broker *Broker, logger zerolog.Logger) *Logic {
	l := &Logic{cfg: cfg, sender: sender, broker: broker, log: logger}
	l.state = &initialState{logic: l}
	l.state.enter()
	return l
}

// Broker exposes the event broker for presentation listeners.
func (l *Logic) Broker() *Broker { return l.broker }

// Session returns the active game session, nil before the first game.
func (l *Logic) Session() *GameSession { return l.session }

// HandleServer routes a server message to the active state. Messages the
// state does not expect are logged and dropped.
func (l *Logic) HandleServer(msg protocol.ServerMessage) {
	l.state.onServer(msg)
}

// setState transitions the machine: the old state unsubscribes before the
// new one subscribes.
func (l *Logic) setState(next state) {
	l.log.Info().Str("from", l.state.name()).Str("to", next.name()).Msg("state transition")
	l.state.exit()
	l.state = next
	l.state.enter()
}

// send transmits one message, logging transport failures.
func (l *Logic) send(msg protocol.ClientMessage) {
	if err := l.sender.Send(msg); err != nil {
		l.log.Warn().Err(err).Msgf("send %T failed", msg)
	}
}

// startSession creates a fresh game session from a start confirmation and
// enters the guessing state.
func (l *Logic) startSession(msg protocol.StartGameResponse) {
	l.session = NewGameSession(msg.AnswerLength, msg.MaxGuesses)
	l.broker.Publish(GameStarted{AnswerLength: msg.AnswerLength, MaxGuesses: msg.MaxGuesses})
	l.setState(&guessingState{logic: l})
}

// state is one phase of the client protocol.
type state interface {
	Listener
	name() string
	enter()
	exit()
	onServer(msg protocol.ServerMessage)
}

// ---- Initial: connect → login → first game ----

type initialState struct{ logic *Logic }

func (s *initialState) name() string { return "Initial" }
func (s *initialState) enter()       { s.logic.broker.Subscribe(s) }
func (s *initialState) exit()        { s.logic.broker.Unsubscribe(s) }

func (s *initialState) HandleEvent(ev Event) {
	if _, ok := ev.(ConnectionReady); ok {
		s.logic.send(protocol.Login{Username: s.logic.cfg.Username, Password: s.logic.cfg.Password})
	}
}

func (s *initialState) onServer(msg protocol.ServerMessage) {
	switch m := msg.(type) {
	case protocol.LoginResponse:
		s.logic.broker.Publish(LoggedIn{Alias: m.Alias})
		s.logic.send(protocol.StartGame{})
	case protocol.StartGameResponse:
		s.logic.startSession(m)
	default:
		s.logic.log.Warn().Msgf("%s: unexpected %T dropped", s.name(), msg)
	}
}

// ---- Guessing: typing and submitting guesses ----

type guessingState struct{ logic *Logic }

func (s *guessingState) name() string { return "Guessing" }
func (s *guessingState) enter()       { s.logic.broker.Subscribe(s) }
func (s *guessingState) exit()        { s.logic.broker.Unsubscribe(s) }

func (s *guessingState) HandleEvent(ev Event) {
	sess := s.logic.session
	switch e := ev.(type) {
	case LetterPressed:
		if !unicode.IsLetter(e.Letter) {
			return
		}
		if sess.AddLetter(e.Letter) {
			s.logic.broker.Publish(InputChanged{Current: sess.Unsubmitted()})
		}
	case BackspacePressed:
		if sess.RemoveLetter() {
			s.logic.broker.Publish(InputChanged{Current: sess.Unsubmitted()})
		}
	case EnterPressed:
		if sess.CanSubmit() {
			s.logic.send(protocol.Guess{Word: sess.Unsubmitted()})
		}
	}
}

func (s *guessingState) onServer(msg protocol.ServerMessage) {
	m, ok := msg.(protocol.GuessResponse)
	if !ok {
		s.logic.log.Warn().Msgf("%s: unexpected %T dropped", s.name(), msg)
		return
	}
	sess := s.logic.session
	if !m.Accepted {
		s.logic.broker.Publish(GuessRejected{Word: sess.Unsubmitted()})
		return
	}

	word := sess.Unsubmitted()
	sess.Apply(m.Ratings)
	s.logic.broker.Publish(GuessApplied{Word: word, Ratings: m.Ratings})

	if puzzle.AllCorrect(m.Ratings) {
		s.logic.broker.Publish(GameOver{Won: true})
		s.logic.setState(&gameOverState{logic: s.logic})
	} else if sess.RemainingGuesses() == 0 {
		s.logic.broker.Publish(GameOver{Won: false})
		s.logic.setState(&gameOverState{logic: s.logic})
	}
}

// ---- GameOver: replay or inspect stats ----

type gameOverState struct{ logic *Logic }

func (s *gameOverState) name() string { return "GameOver" }
func (s *gameOverState) enter()       { s.logic.broker.Subscribe(s) }
func (s *gameOverState) exit()        { s.logic.broker.Unsubscribe(s) }

func (s *gameOverState) HandleEvent(ev Event) {
	switch ev.(type) {
	case EnterPressed:
		s.logic.send(protocol.StartGame{})
	case StatsKeyPressed:
		s.logic.send(protocol.StatsRequest{})
		s.logic.setState(&statsState{logic: s.logic})
	}
}

func (s *gameOverState) onServer(msg protocol.ServerMessage) {
	switch m := msg.(type) {
	case protocol.StartGameResponse:
		s.logic.startSession(m)
	default:
		s.logic.log.Warn().Msgf("%s: unexpected %T dropped", s.name(), msg)
	}
}

// ---- Stats: waiting for / showing the snapshot ----

type statsState struct{ logic *Logic }

func (s *statsState) name() string { return "Stats" }
func (s *statsState) enter()       { s.logic.broker.Subscribe(s) }
func (s *statsState) exit()        { s.logic.broker.Unsubscribe(s) }

func (s *statsState) HandleEvent(ev Event) {
	if _, ok := ev.(BackKeyPressed); ok {
		s.logic.setState(&gameOverState{logic: s.logic})
	}
}

func (s *statsState) onServer(msg protocol.ServerMessage) {
	switch m := msg.(type) {
	case protocol.StatsResponse:
		s.logic.broker.Publish(StatsReceived{Stats: m})
	default:
		s.logic.log.Warn().Msgf("%s: unexpected %T dropped", s.name(), msg)
	}
}
