// internal/words/select.go
//
// Secret selection strategies.
//   - RandomSelector: cryptographically uniform pick (normal play).
//   - DailySelector:  deterministic word of the day shared by every player,
//     HMAC(salt, YYYY-MM-DD) % len(words).

package words

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"time"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
)

// Selector picks the secret for a new session.
type Selector interface {
	Choose(list []game.Word) (game.Word, error)
}

// RandomSelector picks uniformly at random using crypto/rand.
type RandomSelector struct{}

func (RandomSelector) Choose(list []game.Word) (game.Word, error) {
	if len(list) == 0 {
		return "", ErrNoWords
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", err
	}
	return list[n.Int64()], nil
}

// DailySelector picks the same word for everyone on a given UTC date.
type DailySelector struct {
	Salt string
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d DailySelector) Choose(list []game.Word) (game.Word, error) {
	if len(list) == 0 {
		return "", ErrNoWords
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return list[WordIndex(now(), d.Salt, len(list))], nil
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using
// HMAC-SHA256(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}
