// internal/server/loop.go
//
// Single-threaded game loop. Network read pumps enqueue events onto one FIFO
// channel; the loop dequeues and processes exactly one event to completion
// against shared session state, so sessions and dictionaries never need
// locks. The puzzle-date check runs once per iteration before the event is
// handled.

package server

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/protocol"
)

type eventKind uint8

const (
	evConnect eventKind = iota
	evDisconnect
	evMessage
)

// event is one unit of work for the loop.
type event struct {
	kind   eventKind
	connID string
	msg    protocol.ClientMessage // set for evMessage only
}

// Loop owns the inbound FIFO queue and drives the dispatcher.
type Loop struct {
	logic *Logic
	queue chan event
	now   func() time.Time
	log   zerolog.Logger
}

// NewLoop builds a loop around the dispatcher with a buffered queue.
func NewLoop(logic *Logic, logger zerolog.Logger) *Loop {
	return &Loop{
		logic: logic,
		queue: make(chan event, 256),
		now:   time.Now,
		log:   logger,
	}
}

// EnqueueConnect schedules session creation for a new connection.
func (l *Loop) EnqueueConnect(connID string) {
	l.queue <- event{kind: evConnect, connID: connID}
}

// EnqueueDisconnect schedules session teardown.
func (l *Loop) EnqueueDisconnect(connID string) {
	l.queue <- event{kind: evDisconnect, connID: connID}
}

// EnqueueMessage schedules one inbound message.
func (l *Loop) EnqueueMessage(connID string, msg protocol.ClientMessage) {
	l.queue <- event{kind: evMessage, connID: connID, msg: msg}
}

// Run blocks dequeuing events until ctx is cancelled. The blocking dequeue
// is the loop's only wait point; no partial state ever needs rolling back on
// shutdown.
func (l *Loop) Run(ctx context.Context) {
	l.log.Info().Msg("game loop running")
	for {
		select {
		case <-ctx.Done():
			l.log.Info().Msg("game loop stopped")
			return
		case ev := <-l.queue:
			l.logic.Engine().Tick(l.now())
			switch ev.kind {
			case evConnect:
				l.logic.Connect(ev.connID)
			case evDisconnect:
				l.logic.Disconnect(ev.connID)
			case evMessage:
				l.logic.Dispatch(ev.connID, ev.msg)
			}
		}
	}
}
