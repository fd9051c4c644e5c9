// internal/protocol/messages.go
//
// Logical message set exchanged between client and server.
//
// Messages form two sealed sum types (ClientMessage, ServerMessage) so the
// dispatchers can switch over concrete kinds exhaustively instead of routing
// through visitor double-dispatch. The wire framing lives in envelope.go;
// code above the transport only ever sees these typed values.

package protocol

import "github.com/wordwire/wordwire/internal/puzzle"

// ClientMessage is a message sent from client to server.
type ClientMessage interface{ clientMessage() }

// ServerMessage is a message sent from server to client.
type ServerMessage interface{ serverMessage() }

// Login asks the server to authenticate this connection.
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StartGame asks the server to start a new game for this session.
type StartGame struct{}

// Guess submits a word for the active game.
type Guess struct {
	Word string `json:"word"`
}

// StatsRequest asks for the session's stats snapshot.
type StatsRequest struct{}

func (Login) clientMessage()        {}
func (StartGame) clientMessage()    {}
func (Guess) clientMessage()        {}
func (StatsRequest) clientMessage() {}

// LoginResponse confirms a successful authentication.
type LoginResponse struct {
	Alias string `json:"alias"`
}

// StartGameResponse confirms a started game and announces its dimensions.
type StartGameResponse struct {
	AnswerLength int `json:"answerLength"`
	MaxGuesses   int `json:"maxGuesses"`
}

// GuessResponse carries the evaluation of a submitted guess. A rejected
// guess (invalid word, no active game, no guesses remaining) has
// Accepted=false and an empty rating list.
type GuessResponse struct {
	Accepted bool            `json:"accepted"`
	Ratings  []puzzle.Rating `json:"ratings"`
}

// StatsResponse is the session's persisted stats snapshot.
type StatsResponse struct {
	Alias          string `json:"alias"`
	LastPlayDate   int64  `json:"lastPlayDate"` // epoch day
	Score          int    `json:"score"`
	Streak         int    `json:"streak"`
	MaxStreak      int    `json:"maxStreak"`
	WordlesSolved  int    `json:"wordlesSolved"`
	WordlesLost    int    `json:"wordlesLost"`
	GuessHistogram []int  `json:"guessHistogram"` // indexed by guesses-to-solve - 1
}

func (LoginResponse) serverMessage()     {}
func (StartGameResponse) serverMessage() {}
func (GuessResponse) serverMessage()     {}
func (StatsResponse) serverMessage()     {}
