package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/view"
	"github.com/robalobadob/wordle/internal/words"
)

type fixedResolver struct {
	res words.Resolution
	err error
}

func (f fixedResolver) Resolve(ctx context.Context) (words.Resolution, error) {
	return f.res, f.err
}

// blockingResolver never resolves until ctx ends.
type blockingResolver struct{}

func (blockingResolver) Resolve(ctx context.Context) (words.Resolution, error) {
	<-ctx.Done()
	return words.Resolution{}, ctx.Err()
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func typeWord(a *App, w string) {
	for _, r := range w {
		a.handle(runeKey(r))
	}
	a.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Key
		ok   bool
	}{
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.KeyEnter, true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), game.KeyBackspace, true},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), game.KeyBackspace, true},
		{"letter", runeKey('q'), "q", true},
		{"upper passes through", runeKey('Q'), "Q", true},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyOf(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleWin(t *testing.T) {
	a := New(newScreen(t), nil, game.ScoringMembership)
	a.apply(words.Resolution{Word: "hello", Origin: words.OriginNetwork})

	typeWord(a, "world")
	typeWord(a, "hello")

	s := a.Session().Snapshot()
	assert.Equal(t, game.PhaseWon, s.Phase)
	assert.Equal(t, 2, s.Filled())

	b := view.Project(s, a.scoring)
	assert.Equal(t, "solved in 2", a.status(b))

	// further keys are ignored
	assert.True(t, a.handle(runeKey('a')))
	assert.Equal(t, s, a.Session().Snapshot())
}

func TestHandleLoss(t *testing.T) {
	a := New(newScreen(t), nil, game.ScoringMembership)
	a.apply(words.Resolution{Word: "hello", Origin: words.OriginFallback})

	b := view.Project(a.Session().Snapshot(), a.scoring)
	assert.Equal(t, "offline: playing from the bundled list", a.status(b))

	for i := 0; i < game.Rows; i++ {
		typeWord(a, "crane")
	}
	s := a.Session().Snapshot()
	assert.Equal(t, game.PhaseLost, s.Phase)
	assert.Equal(t, "the word was HELLO", a.status(view.Project(s, a.scoring)))
}

func TestHandleBackspaceAndQuit(t *testing.T) {
	a := New(newScreen(t), nil, game.ScoringMembership)
	for _, r := range "abc" {
		a.handle(runeKey(r))
	}
	a.handle(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, "ab", a.Session().Snapshot().Current)

	assert.False(t, a.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, a.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestSubmitHeldUntilResolved(t *testing.T) {
	a := New(newScreen(t), nil, game.ScoringMembership)
	typeWord(a, "hello")

	s := a.Session().Snapshot()
	assert.Equal(t, 0, s.Filled())
	assert.Equal(t, "hello", s.Current)
	assert.Equal(t, "loading word...", a.status(view.Project(s, a.scoring)))

	a.apply(words.Resolution{Word: "hello"})
	a.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, game.PhaseWon, a.Session().Snapshot().Phase)
}

func TestApplyRejectsBadWord(t *testing.T) {
	a := New(newScreen(t), nil, game.ScoringMembership)
	a.apply(words.Resolution{Word: "toolong"})

	assert.ErrorIs(t, a.resolveErr, game.ErrInvalidSolution)
	assert.False(t, a.Session().Snapshot().Resolved)
}

func postAll(t *testing.T, screen tcell.Screen, evs ...tcell.Event) {
	t.Helper()
	for _, ev := range evs {
		require.Eventually(t, func() bool { return screen.PostEvent(ev) == nil },
			time.Second, time.Millisecond)
	}
}

func TestRunPlaysGame(t *testing.T) {
	screen := newScreen(t)
	a := New(screen, fixedResolver{res: words.Resolution{Word: "hello", Origin: words.OriginNetwork}}, game.ScoringStandard)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	require.Eventually(t, func() bool { return a.Session().Snapshot().Resolved }, 2*time.Second, 5*time.Millisecond)

	postAll(t, screen,
		runeKey('h'), runeKey('e'), runeKey('l'), runeKey('l'), runeKey('o'),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Escape")
	}
	assert.Equal(t, game.PhaseWon, a.Session().Snapshot().Phase)
	assert.Equal(t, words.OriginNetwork, a.origin)
}

func TestRunResolveFailure(t *testing.T) {
	screen := newScreen(t)
	a := New(screen, fixedResolver{err: errors.New("offline")}, game.ScoringMembership)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	// the failure is observed before the Escape is handled
	time.Sleep(50 * time.Millisecond)
	postAll(t, screen, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	require.NoError(t, <-done)
	assert.False(t, a.Session().Snapshot().Resolved)
}

func TestRunStopsOnContext(t *testing.T) {
	a := New(newScreen(t), blockingResolver{}, game.ScoringMembership)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
