// internal/game/feedback.go
//
// Scoring of a guess against the secret.
//
// ComputeFeedback is pure and reads no shared state, so it is safe to call
// from any goroutine.
package game

import "fmt"

// ComputeFeedback implements the two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Exact.
//   - Collect the secret letters at the remaining (non-exact) positions.
//
// Pass 2:
//   - Each pending guess letter is Present if it occurs among those
//     unmatched secret letters, otherwise Absent.
//
// Exact matches are resolved first, so a letter matched in place never
// also counts as misplaced elsewhere. Secret and guess must have equal
// length; a mismatch is a programming error and panics.
func ComputeFeedback(secret, guess Word) Verdicts {
	n := len(guess)
	if len(secret) != n {
		panic(fmt.Sprintf("game: feedback length mismatch: secret %d, guess %d", len(secret), n))
	}
	res := make(Verdicts, n)

	// Letters (A–Z) at the secret's non-exact positions.
	var unmatched [26]bool
	pending := make([]bool, n)

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = Exact
		} else {
			pending[i] = true
			if j := idx(secret[i]); j >= 0 && j < 26 {
				unmatched[j] = true
			}
		}
	}

	for i := 0; i < n; i++ {
		if !pending[i] {
			continue
		}
		if j := idx(guess[i]); j >= 0 && j < 26 && unmatched[j] {
			res[i] = Present
		} else {
			res[i] = Absent
		}
	}
	return res
}

// IsAllExact reports whether every verdict is Exact; this is the win test.
func IsAllExact(vs Verdicts) bool {
	for _, v := range vs {
		if v != Exact {
			return false
		}
	}
	return len(vs) > 0
}

// idx maps an upper-case ASCII letter to 0..25.
// Callers bounds-check the result; ParseWord guarantees A–Z.
func idx(c byte) int { return int(c - 'A') }
