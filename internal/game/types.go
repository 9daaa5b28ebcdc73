// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Word:        a validated, upper-case guess or secret.
//   - Verdict:     per-letter result of a guess (exact/present/absent).
//   - State:       session lifecycle (playing → won/lost).
//   - GuessRecord: one accepted turn in a session's history.

package game

import (
	"errors"
	"strings"
)

const (
	// WordLength is the number of letters in every secret and guess.
	WordLength = 5
	// MaxAttempts is the attempt budget of a single session.
	MaxAttempts = 6
)

var (
	// ErrInvalidFormat reports a candidate that is not WordLength letters A–Z.
	// It never consumes an attempt.
	ErrInvalidFormat = errors.New("invalid guess")
	// ErrIllegalState reports a guess submitted to a finished session.
	ErrIllegalState = errors.New("game finished")
)

// Word is an upper-case string of exactly WordLength ASCII letters.
// Obtain one through ParseWord.
type Word string

// ParseWord trims and upper-cases s, then checks it is a valid Word.
func ParseWord(s string) (Word, error) {
	w := strings.ToUpper(strings.TrimSpace(s))
	if len(w) != WordLength || !isAlpha(w) {
		return "", ErrInvalidFormat
	}
	return Word(w), nil
}

// isAlpha checks that a string consists only of upper-case A–Z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Verdict represents the evaluation result for a single letter in a guess.
type Verdict uint8

const (
	Absent  Verdict = iota // letter contributes no further match
	Present                // letter is in the secret at another position
	Exact                  // letter and position both match
)

// Symbol returns the board character for v: 'G', 'Y' or '_'.
func (v Verdict) Symbol() byte {
	switch v {
	case Exact:
		return 'G'
	case Present:
		return 'Y'
	default:
		return '_'
	}
}

func (v Verdict) String() string {
	switch v {
	case Exact:
		return "exact"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// Verdicts is the per-position result of one guess.
type Verdicts []Verdict

// String renders the verdicts as a symbol row, e.g. "G_Y_G".
func (vs Verdicts) String() string {
	b := make([]byte, len(vs))
	for i, v := range vs {
		b[i] = v.Symbol()
	}
	return string(b)
}

// State is the coarse lifecycle of a session.
type State uint8

const (
	InProgress State = iota
	Won
	Lost
)

// String reports the state as "playing", "won" or "lost".
func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s == Won || s == Lost }

// GuessRecord is one accepted guess and the verdicts it earned.
type GuessRecord struct {
	Guess    Word
	Verdicts Verdicts
}
