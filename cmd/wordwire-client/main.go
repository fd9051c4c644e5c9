// cmd/wordwire-client/main.go
//
// Minimal line-oriented terminal client. It drives the protocol state
// machine and prints notification events; it is a driver for the client
// core, not a UI. Input mapping:
//
//   letters + enter  type and submit a guess (word at once)
//   "-"              backspace
//   "!stats"         show stats after a game
//   "!back"          leave the stats view
//   "!quit"          exit

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/client"
	"github.com/wordwire/wordwire/internal/config"
)

// printer renders notification events to stdout.
type printer struct{}

func (printer) HandleEvent(ev client.Event) {
	switch e := ev.(type) {
	case client.LoggedIn:
		fmt.Printf("logged in as %s\n", e.Alias)
	case client.GameStarted:
		fmt.Printf("new game: %d letters, %d guesses\n", e.AnswerLength, e.MaxGuesses)
	case client.InputChanged:
		fmt.Printf("> %s\n", e.Current)
	case client.GuessApplied:
		row := make([]string, len(e.Ratings))
		for i, r := range e.Ratings {
			row[i] = r.String()
		}
		fmt.Printf("%s  [%s]\n", e.Word, strings.Join(row, " "))
	case client.GuessRejected:
		fmt.Println("guess rejected")
	case client.GameOver:
		if e.Won {
			fmt.Println("you won! enter for a new game, !stats for stats")
		} else {
			fmt.Println("out of guesses. enter for a new game, !stats for stats")
		}
	case client.StatsReceived:
		s := e.Stats
		fmt.Printf("%s: score %d, streak %d (best %d), solved %d, lost %d, histogram %v\n",
			s.Alias, s.Score, s.Streak, s.MaxStreak, s.WordlesSolved, s.WordlesLost, s.GuessHistogram)
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.ClientFromEnv()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}
	if cfg.Username == "" || cfg.Password == "" {
		logger.Fatal().Msg("WORDWIRE_USER and WORDWIRE_PASSWORD must be set")
	}

	conn, err := client.Dial(cfg.ServerURL, logger.With().Str("component", "transport").Logger())
	if err != nil {
		logger.Fatal().Err(err).Str("url", cfg.ServerURL).Msg("connect failed")
	}
	defer conn.Close()

	broker := client.NewBroker()
	broker.Subscribe(printer{})
	logic := client.NewLogic(cfg, conn, broker, logger.With().Str("component", "client").Logger())

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	// Single update loop: server messages and user input are both consumed
	// here, so the state machine is only ever touched from this goroutine.
	broker.Publish(client.ConnectionReady{})
	for {
		select {
		case msg, ok := <-conn.Messages():
			if !ok {
				fmt.Println("connection closed")
				return
			}
			logic.HandleServer(msg)
		case line, ok := <-lines:
			if !ok {
				return
			}
			publishLine(broker, line)
		}
	}
}

// publishLine turns one input line into broker events.
func publishLine(broker *client.Broker, line string) {
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "!quit":
		os.Exit(0)
	case "!stats":
		broker.Publish(client.StatsKeyPressed{})
	case "!back":
		broker.Publish(client.BackKeyPressed{})
	case "-":
		broker.Publish(client.BackspacePressed{})
	default:
		for _, r := range strings.TrimSpace(line) {
			broker.Publish(client.LetterPressed{Letter: r})
		}
		broker.Publish(client.EnterPressed{})
	}
}
