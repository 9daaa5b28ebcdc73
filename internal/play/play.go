// internal/play/play.go
//
// Line-oriented game loop: reads one guess per line and prints the board plus
// status messages.
//
// Every collaborator (dictionary, selector, input, output, logger) is passed
// in, so a Game can be driven entirely from tests.
package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

// ErrInputClosed reports that input ended before the game finished.
var ErrInputClosed = errors.New("play: input closed before game finished")

// Game wires a session to line-based input and output.
type Game struct {
	Source   words.Source
	Selector words.Selector
	In       io.Reader
	Out      io.Writer
	Log      zerolog.Logger
}

// New builds a Game. A nil selector means a uniform random pick.
func New(src words.Source, sel words.Selector, in io.Reader, out io.Writer, log zerolog.Logger) *Game {
	if sel == nil {
		sel = words.RandomSelector{}
	}
	return &Game{Source: src, Selector: sel, In: in, Out: out, Log: log}
}

// Run loads the dictionary, picks a secret and plays one session to the end.
// Dictionary failures are returned before anything is printed.
func (g *Game) Run(ctx context.Context) (game.State, error) {
	list, err := g.Source.Load(ctx)
	if err != nil {
		return game.InProgress, err
	}
	secret, err := g.Selector.Choose(list)
	if err != nil {
		return game.InProgress, fmt.Errorf("choose secret: %w", err)
	}
	s, err := game.NewSession(string(secret))
	if err != nil {
		return game.InProgress, err
	}
	g.Log.Debug().Int("words", len(list)).Msg("session started")
	return g.Play(ctx, s)
}

// Play drives an existing session until it is won or lost.
func (g *Game) Play(ctx context.Context, s *game.Session) (game.State, error) {
	rd := bufio.NewReader(g.In)
	fmt.Fprintf(g.Out, "Welcome to Wordle! Guess the %d-letter word in %d tries.\n", game.WordLength, s.MaxAttempts())

	for !s.State().Terminal() {
		if err := ctx.Err(); err != nil {
			return s.State(), err
		}
		fmt.Fprintf(g.Out, "Enter guess %d/%d: ", s.Attempts()+1, s.MaxAttempts())
		line, err := readLine(rd)
		if err != nil {
			return s.State(), err
		}

		verdicts, state, err := s.SubmitGuess(line)
		switch {
		case errors.Is(err, game.ErrInvalidFormat):
			g.Log.Debug().Int("len", len(line)).Msg("rejected guess")
			fmt.Fprintf(g.Out, "Invalid guess. Enter exactly %d letters (A-Z).\n", game.WordLength)
			continue
		case err != nil:
			return state, err
		}
		g.Log.Debug().
			Int("attempt", s.Attempts()).
			Str("result", verdicts.String()).
			Str("state", state.String()).
			Msg("guess scored")

		fmt.Fprint(g.Out, s.Render())
		if !state.Terminal() {
			if out := s.RuledOut(); len(out) > 0 {
				fmt.Fprintf(g.Out, "Ruled out: %s\n", out)
			}
		}
	}

	secret, _ := s.Secret()
	switch s.State() {
	case game.Won:
		fmt.Fprintf(g.Out, "Congratulations! You guessed the word in %d tries.\n", s.Attempts())
	case game.Lost:
		fmt.Fprintf(g.Out, "Out of tries. The secret word was %s.\n", secret)
	}
	return s.State(), nil
}

// readLine returns the next input line of any length. A final line without
// a newline is still returned; ErrInputClosed follows once input is exhausted.
func readLine(rd *bufio.Reader) (string, error) {
	line, err := rd.ReadString('\n')
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, io.EOF):
		if line != "" {
			return line, nil
		}
		return "", ErrInputClosed
	default:
		return "", fmt.Errorf("read guess: %w", err)
	}
}
