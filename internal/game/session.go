// internal/game/session.go
//
// Session drives a single game: it owns the secret, the attempt count and the
// append-only guess history.
//
// Validation rules for SubmitGuess:
//   - Session must not be finished (ErrIllegalState).
//   - Guess must be exactly WordLength letters A–Z (ErrInvalidFormat);
//     rejected guesses consume no attempt.
//
// State transitions:
//   - If all tiles are Exact → Won.
//   - Else if attempts reach MaxAttempts → Lost.
//
// A Session is owned by a single control loop and is not safe for
// concurrent use.
package game

import (
	"fmt"
	"slices"
	"strings"
)

// Session holds the state of one game.
type Session struct {
	secret      Word
	maxAttempts int
	history     []GuessRecord
	state       State
}

// NewSession binds secret for the lifetime of the session.
func NewSession(secret string) (*Session, error) {
	w, err := ParseWord(secret)
	if err != nil {
		return nil, fmt.Errorf("secret %q: %w", secret, err)
	}
	return &Session{
		secret:      w,
		maxAttempts: MaxAttempts,
		history:     make([]GuessRecord, 0, MaxAttempts),
	}, nil
}

// SubmitGuess validates and scores candidate, advancing the session.
// It returns the verdicts and the resulting state, or an error wrapping
// ErrInvalidFormat or ErrIllegalState; on error nothing is mutated.
func (s *Session) SubmitGuess(candidate string) (Verdicts, State, error) {
	if s.state.Terminal() {
		return nil, s.state, ErrIllegalState
	}
	guess, err := ParseWord(candidate)
	if err != nil {
		return nil, s.state, err
	}

	verdicts := ComputeFeedback(s.secret, guess)
	s.history = append(s.history, GuessRecord{Guess: guess, Verdicts: slices.Clone(verdicts)})

	if IsAllExact(verdicts) {
		s.state = Won
	} else if len(s.history) >= s.maxAttempts {
		s.state = Lost
	}
	return verdicts, s.state, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Attempts returns the number of accepted guesses.
func (s *Session) Attempts() int { return len(s.history) }

// MaxAttempts returns the attempt budget.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// History returns a deep copy of the accepted guesses in order.
func (s *Session) History() []GuessRecord {
	out := make([]GuessRecord, len(s.history))
	for i, rec := range s.history {
		out[i] = GuessRecord{Guess: rec.Guess, Verdicts: slices.Clone(rec.Verdicts)}
	}
	return out
}

// Secret discloses the secret once the session is over.
// ok is false while the game is still in progress.
func (s *Session) Secret() (w Word, ok bool) {
	if !s.state.Terminal() {
		return "", false
	}
	return s.secret, true
}

// Render formats the history as a board, one guess/result pair per turn:
//
//	Guess 1: HELPS
//	Result: _YYY_
func (s *Session) Render() string {
	var b strings.Builder
	for i, rec := range s.history {
		fmt.Fprintf(&b, "Guess %d: %s\n", i+1, rec.Guess)
		fmt.Fprintf(&b, "Result: %s\n", rec.Verdicts)
	}
	return b.String()
}

// RuledOut returns the letters, in alphabetical order, that have been guessed
// and only ever scored Absent. It is derived from the verdicts alone.
func (s *Session) RuledOut() []byte {
	var absent, hit [26]bool
	for _, rec := range s.history {
		for i, v := range rec.Verdicts {
			j := idx(rec.Guess[i])
			if v == Absent {
				absent[j] = true
			} else {
				hit[j] = true
			}
		}
	}
	var out []byte
	for j := range absent {
		if absent[j] && !hit[j] {
			out = append(out, byte('A'+j))
		}
	}
	return out
}
