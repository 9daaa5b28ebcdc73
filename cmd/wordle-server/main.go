// cmd/wordle-server/main.go
//
// HTTP play API: loads the dictionary once, then serves single-player
// sessions held in memory. Idle sessions are evicted hourly.
package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/internal/config"
	"github.com/robalobadob/wordle/apps/go-cli/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-cli/internal/store"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

func main() {
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
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	list, err := src.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	_ = closer.Close()

	var sel words.Selector = words.RandomSelector{}
	if cfg.Daily {
		sel = words.DailySelector{Salt: cfg.DailySalt}
	}

	srv := httpserver.New(httpserver.Options{
		Store:        store.NewMemoryStore(),
		Words:        list,
		Selector:     sel,
		JWTSecret:    cfg.JWTSecret,
		ClientOrigin: cfg.ClientOrigin,
	})
	go srv.RunJanitor(ctx, time.Hour)

	log.Info().Str("port", cfg.Port).Int("words", len(list)).Bool("daily", cfg.Daily).Msg("starting wordle-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
