// internal/client/broker.go
//
// Synchronous in-process publish/subscribe. The protocol state machine and
// presentation listeners are decoupled through this broker: input events
// flow in from the UI layer, notification events flow out to whoever
// renders them.
//
// Dispatch happens over a defensive snapshot of the listener list, so
// listeners may subscribe or unsubscribe while an event is being delivered
// (states do exactly that on every transition).

package client

import (
	"sync"

	"github.com/wordwire/wordwire/internal/protocol"
	"github.com/wordwire/wordwire/internal/puzzle"
)

// Event is the sealed sum of everything the broker carries.
type Event interface{ event() }

// Listener receives every published event and picks out the ones it cares
// about with a type switch.
type Listener interface {
	HandleEvent(Event)
}

// ---- input events (UI → state machine) ----

// ConnectionReady fires once the transport has connected.
type ConnectionReady struct{}

// LetterPressed carries one typed letter.
type LetterPressed struct{ Letter rune }

// BackspacePressed removes the last typed letter.
type BackspacePressed struct{}

// EnterPressed submits the current guess, or asks for a new game after one
// has ended.
type EnterPressed struct{}

// StatsKeyPressed requests the stats view.
type StatsKeyPressed struct{}

// BackKeyPressed leaves the stats view.
type BackKeyPressed struct{}

// ---- notification events (state machine → presentation) ----

// LoggedIn reports a successful authentication.
type LoggedIn struct{ Alias string }

// GameStarted reports a fresh game session.
type GameStarted struct {
	AnswerLength int
	MaxGuesses   int
}

// InputChanged reports a change to the unsubmitted guess.
type InputChanged struct{ Current string }

// GuessApplied reports an accepted guess and its ratings.
type GuessApplied struct {
	Word    string
	Ratings []puzzle.Rating
}

// GuessRejected reports a guess the server refused.
type GuessRejected struct{ Word string }

// GameOver reports the end of the active game.
type GameOver struct{ Won bool }

// StatsReceived republishes the server's stats snapshot.
type StatsReceived struct{ Stats protocol.StatsResponse }

func (ConnectionReady) event()  {}
func (LetterPressed) event()    {}
func (BackspacePressed) event() {}
func (EnterPressed) event()     {}
func (StatsKeyPressed) event()  {}
func (BackKeyPressed) event()   {}
func (LoggedIn) event()         {}
func (GameStarted) event()      {}
func (InputChanged) event()     {}
func (GuessApplied) event()     {}
func (GuessRejected) event()    {}
func (GameOver) event()         {}
func (StatsReceived) event()    {}

// Broker fans events out to the registered listeners.
type Broker struct {
	mu        sync.Mutex
	listeners []Listener
}

// NewBroker constructs an empty broker.
func NewBroker() *Broker { return &Broker{} }

// Subscribe registers a listener. Nil and duplicate listeners are ignored.
func (b *Broker) Subscribe(l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.listeners {
		if existing == l {
			return
		}
	}
	b.listeners = append(b.listeners, l)
}

// Unsubscribe removes a previously registered listener.
func (b *Broker) Unsubscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to a snapshot of the current listeners.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	snapshot := append([]Listener(nil), b.listeners...)
	b.mu.Unlock()
	for _, l := range snapshot {
		l.HandleEvent(ev)
	}
}
