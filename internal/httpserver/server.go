// internal/httpserver/server.go
//
// HTTP play API for single-player sessions.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", POST /game/new.
//   - Session endpoints (bearer token): POST /game/guess, GET /game/board.
//   - Session tokens: HS256 JWTs whose "gid" claim names the session.
//   - Eviction of sessions idle for longer than a token lives.
//
// Notes:
//   - Sessions live in a store.Store; nothing is persisted.
//   - The secret is only ever returned once the session is won or lost.

package httpserver

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
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
	"github.com/robalobadob/wordle/apps/go-cli/internal/store"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

// tokenTTL bounds how long a session token stays valid.
const tokenTTL = 24 * time.Hour

// Options configures a Server.
type Options struct {
	Store        store.Store
	Words        []game.Word    // candidate secrets, loaded once at startup
	Selector     words.Selector // nil means uniform random
	JWTSecret    string
	ClientOrigin string
}

// Server bundles router, session store and secret selection.
type Server struct {
	r      *chi.Mux
	store  store.Store
	words  []game.Word
	sel    words.Selector
	secret []byte
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	sel := opts.Selector
	if sel == nil {
		sel = words.RandomSelector{}
	}
	s := &Server{
		r:      chi.NewRouter(),
		store:  opts.Store,
		words:  opts.Words,
		sel:    sel,
		secret: []byte(opts.JWTSecret),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/board"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/board", s.handleBoard)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// RunJanitor evicts idle sessions every interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(ctx, now)
		}
	}
}

// sweep drops sessions untouched for tokenTTL; their tokens have expired.
func (s *Server) sweep(ctx context.Context, now time.Time) int {
	n := s.store.Sweep(ctx, now.Add(-tokenTTL))
	if n > 0 {
		log.Info().Int("evicted", n).Msg("swept idle sessions")
	}
	return n
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type ctxSessionKey struct{}

// requireSession enforces a valid session token and injects the session ID
// into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearer(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		id, err := s.parseToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameRes struct {
	GameID      string `json:"gameId"`
	Token       string `json:"token"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
}

// handleNewGame picks a secret, registers a session and returns its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	secret, err := s.sel.Choose(s.words)
	if err != nil {
		log.Error().Err(err).Msg("choose secret")
		writeError(w, http.StatusInternalServerError, "no_words")
		return
	}
	sess, err := game.NewSession(string(secret))
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "bad_secret")
		return
	}
	id, err := s.store.Create(r.Context(), sess)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.signToken(id)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Info().Str("gameId", id).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:      id,
		Token:       tok,
		WordLength:  game.WordLength,
		MaxAttempts: sess.MaxAttempts(),
	})
}

type guessReq struct {
	Guess string `json:"guess"`
}

type guessRes struct {
	Result   string `json:"result"` // symbol row, e.g. "G_Y__"
	State    string `json:"state"`  // "playing" | "won" | "lost"
	Attempts int    `json:"attempts"`
	Secret   string `json:"secret,omitempty"`
}

// handleGuess applies a guess to the caller's session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	id := sessionID(r)

	var res guessRes
	err := s.store.With(r.Context(), id, func(sess *game.Session) error {
		verdicts, state, err := sess.SubmitGuess(req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{Result: verdicts.String(), State: state.String(), Attempts: sess.Attempts()}
		if secret, ok := sess.Secret(); ok {
			res.Secret = string(secret)
		}
		return nil
	})
	switch {
	case errors.Is(err, game.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, "Invalid guess")
		return
	case errors.Is(err, game.ErrIllegalState):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", id).Msg("guess")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	if res.State != game.InProgress.String() {
		log.Info().Str("gameId", id).Str("state", res.State).Int("attempts", res.Attempts).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

type boardRes struct {
	Board    string `json:"board"`
	State    string `json:"state"`
	Attempts int    `json:"attempts"`
	Secret   string `json:"secret,omitempty"`
}

// handleBoard returns the rendered history of the caller's session.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	var res boardRes
	err := s.store.With(r.Context(), sessionID(r), func(sess *game.Session) error {
		res = boardRes{Board: sess.Render(), State: sess.State().String(), Attempts: sess.Attempts()}
		if secret, ok := sess.Secret(); ok {
			res.Secret = string(secret)
		}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ tokens -------------------------------------

// signToken creates an HS256 JWT binding the bearer to session id.
func (s *Server) signToken(id string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": id,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	return t.SignedString(s.secret)
}

// parseToken validates tok and returns its session ID.
func (s *Server) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	id, _ := claims["gid"].(string)
	if id == "" {
		return "", errors.New("missing gid")
	}
	return id, nil
}

// bearer extracts a token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionKey{}).(string)
	return id
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
