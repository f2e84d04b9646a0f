// internal/tui/tui.go

// Package tui is the terminal front-end. It owns one game session, listens
// for keystrokes on the whole screen and redraws the board after every
// event.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/view"
	"github.com/robalobadob/wordle/internal/words"
)

// Resolver supplies the session's solution. *words.Source satisfies it.
type Resolver interface {
	Resolve(ctx context.Context) (words.Resolution, error)
}

var (
	styleBase     = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleActive   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleInactive = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleExact    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	stylePresent  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleAbsent   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGray)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const (
	tileWidth = 3
	gridTop   = 2
	gridLeft  = 2
)

// App drives one game on a tcell screen.
type App struct {
	screen   tcell.Screen
	session  *game.Session
	scoring  game.Scoring
	resolver Resolver

	origin     words.Origin
	resolveErr error
}

// New returns an App. The caller owns the screen's Init/Fini.
func New(screen tcell.Screen, resolver Resolver, scoring game.Scoring) *App {
	return &App{
		screen:   screen,
		session:  game.NewSession(),
		scoring:  scoring,
		resolver: resolver,
	}
}

// Session exposes the game being played.
func (a *App) Session() *game.Session { return a.session }

// Run blocks until the player quits (Esc or Ctrl+C) or ctx ends.
// All state changes happen on the calling goroutine.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resolved := make(chan words.Resolution, 1)
	failed := make(chan error, 1)
	go func() {
		res, err := a.resolver.Resolve(ctx)
		if err != nil {
			failed <- err
			return
		}
		resolved <- res
	}()

	// listener: released when the screen is finalized or Run returns
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case res := <-resolved:
			a.apply(res)
		case err := <-failed:
			a.resolveErr = err
			log.Error().Err(err).Msg("resolve solution")
		case ev := <-events:
			if !a.handle(ev) {
				return nil
			}
		}
		a.draw()
	}
}

func (a *App) apply(res words.Resolution) {
	if err := a.session.SetSolution(res.Word); err != nil {
		a.resolveErr = err
		log.Error().Err(err).Str("word", res.Word).Msg("set solution")
		return
	}
	a.origin = res.Origin
	log.Info().Str("origin", string(res.Origin)).Int("candidates", res.Candidates).Msg("solution resolved")
}

// handle processes one event and reports whether to keep running.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if k, ok := keyOf(ev); ok {
			before := a.session.Snapshot()
			after := a.session.Press(k)
			if !before.Over() && after.Over() {
				log.Info().Str("outcome", string(after.Phase)).Int("guesses", after.Filled()).Msg("game finished")
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// keyOf maps a terminal key to the browser-style key name.
func keyOf(ev *tcell.EventKey) (game.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return game.KeyEnter, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return game.KeyBackspace, true
	case tcell.KeyRune:
		return game.Key(string(ev.Rune())), true
	}
	return "", false
}

func (a *App) draw() {
	a.screen.Clear()
	board := view.Project(a.session.Snapshot(), a.scoring)

	puts(a.screen, gridLeft, 0, styleTitle, "W O R D L E")
	for i, row := range board.Rows {
		y := gridTop + i
		for j, tile := range row.Tiles {
			ch := " "
			if tile.Char != "" {
				ch = strings.ToUpper(tile.Char)
			}
			puts(a.screen, gridLeft+j*(tileWidth+1), y, tileStyle(row.Kind, tile.Mark), " "+ch+" ")
		}
	}
	puts(a.screen, gridLeft, gridTop+game.Rows+1, styleBase, a.status(board))
	puts(a.screen, gridLeft, gridTop+game.Rows+2, styleHelp, "letters type, Enter submits, Backspace deletes, Esc quits")
	a.screen.Show()
}

func tileStyle(kind view.RowKind, m game.Mark) tcell.Style {
	switch m {
	case game.MarkExact:
		return styleExact
	case game.MarkPresent:
		return stylePresent
	case game.MarkAbsent:
		return styleAbsent
	}
	if kind == view.RowActive {
		return styleActive
	}
	return styleInactive
}

// status is the line under the grid.
func (a *App) status(b view.Board) string {
	switch {
	case a.resolveErr != nil && !b.Resolved:
		return "could not load a word: " + a.resolveErr.Error()
	case !b.Resolved:
		return "loading word..."
	case b.Phase == game.PhaseWon:
		return fmt.Sprintf("solved in %d", filled(b))
	case b.Phase == game.PhaseLost:
		return "the word was " + strings.ToUpper(b.Solution)
	case a.origin == words.OriginFallback:
		return "offline: playing from the bundled list"
	}
	return ""
}

func filled(b view.Board) int {
	n := 0
	for _, r := range b.Rows {
		if r.Kind == view.RowFinalized {
			n++
		}
	}
	return n
}

func puts(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}
