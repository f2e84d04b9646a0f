// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Key:   a keyboard event, named like a browser KeyboardEvent.key.
//   - Phase: accepting input, won or lost.
//   - Mark:  per-letter classification of a finalized guess.
//   - State: the full in-memory state of one game.

package game

import "errors"

const (
	// Rows is the number of guess slots.
	Rows = 6
	// Cols is the word length.
	Cols = 5
	// Placeholder is the solution a game holds until the word source resolves.
	Placeholder = "hello"
)

var (
	ErrInvalidSolution = errors.New("game: solution must be 5 letters a-z")
	ErrAlreadyResolved = errors.New("game: solution already resolved")
	ErrUnknownScoring  = errors.New("game: unknown scoring mode")
)

// Key is a single keyboard event. Letters are the letter itself ("a"),
// control keys use their browser names ("Enter", "Backspace").
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyBackspace Key = "Backspace"
)

// IsLetter reports whether k is exactly one lowercase ASCII letter.
// Uppercase, digits, punctuation and multi-character names are rejected.
func (k Key) IsLetter() bool {
	return len(k) == 1 && k[0] >= 'a' && k[0] <= 'z'
}

// Phase is the coarse state of a game.
type Phase string

const (
	PhaseAccepting Phase = "accepting"
	PhaseWon       Phase = "won"
	PhaseLost      Phase = "lost"
)

// Mark is the evaluation result for a single tile.
//   - "exact":   letter is in the solution at the same position.
//   - "present": letter is in the solution somewhere else.
//   - "absent":  letter does not occur in the solution.
//   - "none":    tile is not classified (active or inactive row).
type Mark string

const (
	MarkNone    Mark = "none"
	MarkExact   Mark = "exact"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// State holds everything mutable about one game. It is a value type:
// Apply and Resolve return modified copies and never touch their input.
type State struct {
	Solution string       // lowercase; Placeholder until Resolved
	Resolved bool         // true once the word source delivered
	Slots    [Rows]string // finalized guesses, filled left to right
	Current  string       // in-progress guess, 0..Cols letters
	Phase    Phase
}
