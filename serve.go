// serve.go
//
// The serve subcommand: word catalog, session store, file watcher and
// HTTP server, stopped gracefully on SIGINT/SIGTERM.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/catalog"
	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/httpserver"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

func serveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			setupLogging(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, cfg.Logging.Level)
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := words.Init(cfg.Words.AnswersFile); err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	cat, err := catalog.Open(ctx, cfg.Server.DatabasePath)
	if err != nil {
		return err
	}
	defer cat.Close()

	if n, err := cat.Seed(ctx, words.Answers()); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	} else if n > 0 {
		log.Info().Int("words", n).Msg("catalog seeded from bundled list")
	}

	if cfg.Server.WatchFile != "" {
		w := &words.Watcher{
			Path: cfg.Server.WatchFile,
			OnChange: func(list []string) {
				n, err := cat.Add(ctx, catalog.SourceFile, list)
				if err != nil {
					log.Error().Err(err).Msg("merge watched word file")
					return
				}
				log.Info().Int("added", n).Str("file", cfg.Server.WatchFile).Msg("word file merged")
			},
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Error().Err(err).Msg("word file watcher stopped")
			}
		}()
	}

	sessions := store.NewMemoryStore()
	go store.RunSweeper(ctx, sessions, cfg.Server.SessionTTL, time.Minute, func(n int) {
		log.Debug().Int("removed", n).Msg("expired sessions swept")
	})

	srv := httpserver.New(cfg, sessions, cat)
	errc := make(chan error, 1)
	go func() {
		if err := srv.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server exited: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
	return nil
}
