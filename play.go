// play.go
//
// The play subcommand: a tcell screen, a Word Source and the terminal app.
// Logs go to LOG_FILE (or nowhere) because the terminal owns stdout.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/tui"
	"github.com/robalobadob/wordle/internal/words"
)

func playCmd(g *globalFlags) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			if url != "" {
				cfg.Words.URL = url
			}
			return play(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Word list endpoint (JSON array of strings)")
	return cmd
}

func play(ctx context.Context, cfg *config.Config) error {
	// the terminal owns stdout, so logs go to a file or nowhere
	var out io.Writer = io.Discard
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	setupLogging(out, cfg.Logging.Level)

	if err := words.Init(cfg.Words.AnswersFile); err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	src := words.NewSource(cfg.Words.URL, cfg.Words.Timeout, cfg.Words.Retries)
	app := tui.New(screen, src, cfg.Scoring())
	log.Info().Str("url", src.URL).Msg("game started")
	return app.Run(ctx)
}
