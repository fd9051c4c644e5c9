// cmd/wordwire-server/main.go
//
// Server entry point: load configuration, word lists, and the credential
// store; wire the dispatcher, game loop, websocket transport, and HTTP
// surface; run until interrupted.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/config"
	"github.com/wordwire/wordwire/internal/creds"
	"github.com/wordwire/wordwire/internal/puzzle"
	"github.com/wordwire/wordwire/internal/server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.ServerFromEnv()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	dicts, err := loadDictionaries(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load word lists")
	}
	a, g := dicts.Stats()
	logger.Info().Int("answers", a).Int("guesses", g).Msg("word lists loaded")

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open credential store")
	}

	engine := puzzle.NewEngine(dicts, logger.With().Str("component", "puzzle").Logger(), time.Now())
	logic := server.NewLogic(cfg, engine, store, logger.With().Str("component", "server").Logger())
	loop := server.NewLoop(logic, logger.With().Str("component", "loop").Logger())
	ws := server.NewWSTransport(loop, logger.With().Str("component", "transport").Logger())
	logic.AttachSender(ws)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go loop.Run(ctx)

	httpSrv := server.NewHTTPServer(cfg, dicts, store, ws, logger.With().Str("component", "http").Logger())
	logger.Info().Str("addr", cfg.Addr).Msg("starting wordwire server")
	if err := httpSrv.Start(ctx, cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
	logger.Info().Msg("shutdown complete")
}

// loadDictionaries reads the configured word lists, or the embedded
// defaults when no files are configured. A configured but unreadable file
// is fatal, and so is configuring only one of the pair.
func loadDictionaries(cfg config.Server) (*puzzle.Dictionaries, error) {
	switch {
	case cfg.AnswersFile != "" && cfg.GuessesFile != "":
		return puzzle.LoadDictionaries(cfg.AnswersFile, cfg.GuessesFile)
	case cfg.AnswersFile != "" || cfg.GuessesFile != "":
		return nil, errors.New("WORDS_ANSWERS_FILE and WORDS_GUESSES_FILE must be set together")
	default:
		return puzzle.DefaultDictionaries()
	}
}

// openStore opens the SQLite credential store, or an ephemeral in-memory
// one when no database path is configured.
func openStore(cfg config.Server, logger zerolog.Logger) (creds.Store, error) {
	if cfg.DBPath == "" {
		logger.Warn().Msg("DB_PATH not set, using in-memory credential store")
		return creds.NewMemoryStore(), nil
	}
	return creds.OpenSQLite(cfg.DBPath, logger.With().Str("component", "creds").Logger())
}
