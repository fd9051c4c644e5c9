// internal/config/config.go
//
// Explicit configuration structs for both binaries. Every recognized key is
// enumerated once, here; values come from the environment (optionally seeded
// from a .env file by the caller via godotenv).

package config

import (
	"os"
	"strconv"
)

// Server holds all server-side settings.
type Server struct {
	Addr         string // listen address for the HTTP/websocket surface
	AnswersFile  string // path to the answers word list ("" = embedded defaults)
	GuessesFile  string // path to the guesses word list ("" = embedded defaults)
	DBPath       string // SQLite file for the credential store ("" = in-memory)
	JWTSecret    string // HMAC secret for the HTTP stats endpoints
	PointsDaily  int    // reward for winning the daily puzzle
	PointsRandom int    // reward for winning a repeat-play game
	LogLevel     string
}

// ServerFromEnv populates a Server config from the environment.
func ServerFromEnv() Server {
	return Server{
		Addr:         ":" + getEnv("PORT", "4780"),
		AnswersFile:  os.Getenv("WORDS_ANSWERS_FILE"),
		GuessesFile:  os.Getenv("WORDS_GUESSES_FILE"),
		DBPath:       os.Getenv("DB_PATH"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		PointsDaily:  envInt("POINTS_DAILY", 3),
		PointsRandom: envInt("POINTS_RANDOM", 1),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// Client holds all client-side settings.
type Client struct {
	ServerURL string // websocket endpoint, e.g. ws://localhost:4780/ws
	Username  string
	Password  string
	LogLevel  string
}

// ClientFromEnv populates a Client config from the environment.
func ClientFromEnv() Client {
	return Client{
		ServerURL: getEnv("SERVER_URL", "ws://localhost:4780/ws"),
		Username:  os.Getenv("WORDWIRE_USER"),
		Password:  os.Getenv("WORDWIRE_PASSWORD"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt returns the integer value of k or def if unset/unparsable.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
