// internal/server/http.go
//
// HTTP surface around the game server.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON).
//   - GET  /ws          → websocket upgrade into the session protocol.
//   - GET  /health      → liveness probe.
//   - GET  /debug/words → word list counts.
//   - POST /auth/signup → create an account, issue an HS256 JWT.
//   - POST /auth/login  → verify credentials, issue an HS256 JWT.
//   - GET  /stats/me    → stats snapshot for the token's user (requires auth).
//
// The JWT endpoints exist for dashboards and tooling; gameplay itself
// authenticates in-protocol over the websocket.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/config"
	"github.com/wordwire/wordwire/internal/creds"
	"github.com/wordwire/wordwire/internal/puzzle"
)

// HTTPServer bundles the router with its dependencies.
type HTTPServer struct {
	r     *chi.Mux
	cfg   config.Server
	dicts *puzzle.Dictionaries
	store creds.Store
	log   zerolog.Logger
}

// NewHTTPServer constructs the router, installs middleware, and registers
// routes. ws carries the websocket endpoint.
func NewHTTPServer(cfg config.Server, dicts *puzzle.Dictionaries, store creds.Store, ws *WSTransport, logger zerolog.Logger) *HTTPServer {
	s := &HTTPServer{r: chi.NewRouter(), cfg: cfg, dicts: dicts, store: store, log: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/ws", ws.HandleWS)

	// Everything below is plain JSON with bounded handler time. The
	// websocket route stays outside the timeout middleware.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordwire","endpoints":["/ws","/health","POST /auth/signup","POST /auth/login","/stats/me"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, _ *http.Request) {
			a, g := s.dicts.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "guesses": g})
		})

		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.With(s.requireAuth()).Get("/stats/me", s.handleStatsMe)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests with a short grace period. A nil return means a clean shutdown.
func (s *HTTPServer) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down http server")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *HTTPServer) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupReq struct {
	Username string `json:"username"`
	Alias    string `json:"alias"`
	Password string `json:"password"`
}

// handleSignup creates a fresh account and returns a token for it.
func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body signupReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(body.Username)
	if len(username) < 3 || len(body.Password) < 6 {
		http.Error(w, `{"error":"Username or password too short"}`, http.StatusBadRequest)
		return
	}
	alias := strings.TrimSpace(body.Alias)
	if alias == "" {
		alias = username
	}
	if err := s.store.CreateUser(r.Context(), username, alias, body.Password); err != nil {
		if errors.Is(err, creds.ErrUsernameTaken) {
			http.Error(w, `{"error":"Username taken"}`, http.StatusConflict)
			return
		}
		s.log.Error().Err(err).Str("username", username).Msg("signup failed")
		http.Error(w, `{"error":"signup_failed"}`, http.StatusInternalServerError)
		return
	}
	s.log.Info().Str("username", username).Msg("account created")
	tok, exp, err := s.signJWT(username)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"username":  username,
		"alias":     alias,
		"token":     tok,
		"expiresAt": exp.UTC().Format(time.RFC3339),
	})
}

// handleLogin verifies credentials against the store and returns a signed token.
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	rec, err := s.store.Load(r.Context(), strings.TrimSpace(body.Username))
	if err != nil || !creds.CheckPassword(rec.PasswordHash, body.Password) {
		s.log.Warn().Str("username", body.Username).Msg("http login failed")
		http.Error(w, `{"error":"Invalid username or password"}`, http.StatusUnauthorized)
		return
	}
	tok, exp, err := s.signJWT(rec.Username)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":     tok,
		"expiresAt": exp.UTC().Format(time.RFC3339),
	})
}

// handleStatsMe returns the stored stats snapshot for the token's user.
func (s *HTTPServer) handleStatsMe(w http.ResponseWriter, r *http.Request) {
	username, _ := r.Context().Value(ctxUserKey{}).(string)
	rec, err := s.store.Load(r.Context(), username)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"alias":          rec.Alias,
		"lastPlayDate":   rec.LastPlayDate,
		"score":          rec.Score,
		"streak":         rec.Streak,
		"maxStreak":      rec.MaxStreak,
		"wordlesSolved":  rec.WordlesSolved,
		"wordlesLost":    rec.WordlesLost,
		"guessHistogram": rec.GuessHistogram,
	})
}

// signJWT creates an HS256 token carrying the username, valid for 14 days.
func (s *HTTPServer) signJWT(username string) (string, time.Time, error) {
	exp := time.Now().Add(14 * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      exp.Unix(),
		"iat":      time.Now().Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// ctxUserKey is the context key type for the authenticated username.
type ctxUserKey struct{}

// requireAuth enforces a valid bearer token and injects the username into
// the request context.
func (s *HTTPServer) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			username, _ := claims["username"].(string)
			if username == "" {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserKey{}, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts a token from the Authorization header.
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
