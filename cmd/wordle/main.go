// cmd/wordle/main.go
//
// Terminal game: reads guesses from stdin and prints the board to stdout.
// Logs go to stderr so they never interleave with the board.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/internal/config"
	"github.com/robalobadob/wordle/apps/go-cli/internal/play"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, closer, err := words.Resolve(ctx, cfg.WordsDB, cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	defer closer.Close()

	var sel words.Selector = words.RandomSelector{}
	if cfg.Daily {
		sel = words.DailySelector{Salt: cfg.DailySalt}
	}

	g := play.New(src, sel, os.Stdin, os.Stdout, log.Logger)
	state, err := g.Run(ctx)
	if errors.Is(err, play.ErrInputClosed) {
		log.Warn().Msg("input closed, game abandoned")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("game aborted")
		closer.Close()
		os.Exit(1)
	}
	log.Debug().Str("state", state.String()).Msg("game over")
}
