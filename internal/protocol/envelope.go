// internal/protocol/envelope.go
//
// JSON framing for the message set: every frame is {"kind": ..., "payload": ...}.
// The transport reads/writes envelopes; everything above it works with the
// typed messages from messages.go.

package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire frame for a single message.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message kind identifiers.
const (
	KindLogin             = "login"
	KindStartGame         = "startGame"
	KindGuess             = "guess"
	KindStatsRequest      = "statsRequest"
	KindLoginResponse     = "loginResponse"
	KindStartGameResponse = "startGameResponse"
	KindGuessResponse     = "guessResponse"
	KindStatsResponse     = "statsResponse"
)

// EncodeClient wraps a client message in its envelope.
func EncodeClient(msg ClientMessage) (Envelope, error) {
	switch msg.(type) {
	case Login:
		return encode(KindLogin, msg)
	case StartGame:
		return encode(KindStartGame, msg)
	case Guess:
		return encode(KindGuess, msg)
	case StatsRequest:
		return encode(KindStatsRequest, msg)
	default:
		return Envelope{}, fmt.Errorf("unknown client message %T", msg)
	}
}

// EncodeServer wraps a server message in its envelope.
func EncodeServer(msg ServerMessage) (Envelope, error) {
	switch msg.(type) {
	case LoginResponse:
		return encode(KindLoginResponse, msg)
	case StartGameResponse:
		return encode(KindStartGameResponse, msg)
	case GuessResponse:
		return encode(KindGuessResponse, msg)
	case StatsResponse:
		return encode(KindStatsResponse, msg)
	default:
		return Envelope{}, fmt.Errorf("unknown server message %T", msg)
	}
}

func encode(kind string, msg any) (Envelope, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s: %w", kind, err)
	}
	return Envelope{Kind: kind, Payload: payload}, nil
}

// DecodeClient unwraps an envelope into a typed client message.
func DecodeClient(env Envelope) (ClientMessage, error) {
	switch env.Kind {
	case KindLogin:
		return decode[Login](env)
	case KindStartGame:
		return decode[StartGame](env)
	case KindGuess:
		return decode[Guess](env)
	case KindStatsRequest:
		return decode[StatsRequest](env)
	default:
		return nil, fmt.Errorf("unknown client message kind %q", env.Kind)
	}
}

// DecodeServer unwraps an envelope into a typed server message.
func DecodeServer(env Envelope) (ServerMessage, error) {
	switch env.Kind {
	case KindLoginResponse:
		return decode[LoginResponse](env)
	case KindStartGameResponse:
		return decode[StartGameResponse](env)
	case KindGuessResponse:
		return decode[GuessResponse](env)
	case KindStatsResponse:
		return decode[StatsResponse](env)
	default:
		return nil, fmt.Errorf("unknown server message kind %q", env.Kind)
	}
}

func decode[T any](env Envelope) (T, error) {
	var msg T
	if len(env.Payload) == 0 {
		return msg, nil
	}
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		return msg, fmt.Errorf("unmarshal %s: %w", env.Kind, err)
	}
	return msg, nil
}
