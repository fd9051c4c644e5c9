package protocol

import (
	"strings"
	"testing"

	"github.com/wordwire/wordwire/internal/puzzle"
)

func TestClientEnvelopeDispatch(t *testing.T) {
	env, err := EncodeClient(Guess{Word: "CRANE"})
	if err != nil {
		t.Fatal(err)
	}
	if env.Kind != KindGuess {
		t.Fatalf("kind = %q", env.Kind)
	}
	msg, err := DecodeClient(env)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := msg.(Guess)
	if !ok || g.Word != "CRANE" {
		t.Fatalf("decoded %#v", msg)
	}
}

func TestServerEnvelopeDispatch(t *testing.T) {
	in := GuessResponse{
		Accepted: true,
		Ratings:  []puzzle.Rating{puzzle.RatingCorrect, puzzle.RatingPresent, puzzle.RatingAbsent, puzzle.RatingAbsent, puzzle.RatingCorrect},
	}
	env, err := EncodeServer(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(env.Payload), `"present"`) {
		t.Fatalf("ratings should serialize as names: %s", env.Payload)
	}
	msg, err := DecodeServer(env)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := msg.(GuessResponse)
	if !ok || !out.Accepted || len(out.Ratings) != 5 || out.Ratings[1] != puzzle.RatingPresent {
		t.Fatalf("decoded %#v", msg)
	}
}

func TestEmptyPayloadMessages(t *testing.T) {
	env, err := EncodeClient(StartGame{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeClient(env); err != nil {
		t.Fatal(err)
	}
}

func TestUnknownKindRejected(t *testing.T) {
	if _, err := DecodeClient(Envelope{Kind: "teleport"}); err == nil {
		t.Error("unknown client kind accepted")
	}
	if _, err := DecodeServer(Envelope{Kind: "login"}); err == nil {
		t.Error("client kind accepted as server message")
	}
}
