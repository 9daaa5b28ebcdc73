// internal/words/source.go
//
// Provides dictionary loading for the game engine.
//
// Responsibilities:
//   - Define the Source interface the game loop loads its word list from.
//   - Read flat newline-delimited word lists from disk or the embedded default.
//   - Normalize entries (trim, upper-case) and keep only valid game words.
//
// Constraints:
//   • Words must be game.WordLength alphabetic letters.
//   • Blank lines and lines starting with '#' are ignored.
//   • Duplicates are dropped; first occurrence wins.
//   • An empty result is a read failure.

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-cli/assets"
	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
)

// ErrNoWords reports a dictionary with no usable entries.
var ErrNoWords = errors.New("words: list is empty")

// ReadError is returned when a dictionary cannot be loaded. It is fatal to
// game construction: no secret can be bound without a word list.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("words: read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Source yields the set of candidate secret words.
type Source interface {
	Load(ctx context.Context) ([]game.Word, error)
}

// FileSource reads a newline-delimited word list from Path.
type FileSource struct {
	Path string
}

// Load opens Path and parses one word per line.
func (s FileSource) Load(ctx context.Context) ([]game.Word, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &ReadError{Source: s.Path, Err: err}
	}
	defer f.Close()

	list, err := readList(ctx, f)
	if err != nil {
		return nil, &ReadError{Source: s.Path, Err: err}
	}
	return list, nil
}

// EmbeddedSource reads the dictionary compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(ctx context.Context) ([]game.Word, error) {
	rc, err := assets.Dictionary()
	if err != nil {
		return nil, &ReadError{Source: "embedded:" + assets.DictionaryName, Err: err}
	}
	defer rc.Close()

	list, err := readList(ctx, rc)
	if err != nil {
		return nil, &ReadError{Source: "embedded:" + assets.DictionaryName, Err: err}
	}
	return list, nil
}

// readList scans r line by line, keeping valid, unique words.
func readList(ctx context.Context, r io.Reader) ([]game.Word, error) {
	var out []game.Word
	seen := make(map[game.Word]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := game.ParseWord(line)
		if err != nil {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoWords
	}
	return out, nil
}
