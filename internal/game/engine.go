// internal/game/engine.go
//
// Input state machine for a single Wordle game.
// Responsibilities:
//   - Build the initial state (placeholder solution, six empty slots).
//   - Apply keyboard events: letters, Backspace and Enter.
//   - Resolve the solution exactly once when the word source delivers.
//   - Track phase transitions: accepting → won/lost.
//
// Notes:
//   - Invalid input is a quiet no-op; Apply never returns an error.
//   - Submissions are held while the solution is unresolved, so a guess is
//     never checked against the placeholder.

package game

import "strings"

// NewState returns a fresh game holding the placeholder solution.
func NewState() State {
	return State{Solution: Placeholder, Phase: PhaseAccepting}
}

// Over reports whether the game has finished (won or lost).
func (s State) Over() bool { return s.Phase != PhaseAccepting }

// Won reports whether the game finished with a correct guess.
func (s State) Won() bool { return s.Phase == PhaseWon }

// Filled returns the number of finalized guesses, which is also the index
// of the first empty slot.
func (s State) Filled() int {
	for i, g := range s.Slots {
		if g == "" {
			return i
		}
	}
	return Rows
}

// ActiveRow returns the slot showing the current input, or -1 when the
// game is over.
func (s State) ActiveRow() int {
	if s.Over() {
		return -1
	}
	return s.Filled()
}

// Apply is the transition function (state, key) -> state.
func Apply(s State, k Key) State {
	if s.Over() {
		return s
	}
	switch {
	case k == KeyEnter:
		return submit(s)
	case k == KeyBackspace:
		if n := len(s.Current); n > 0 {
			s.Current = s.Current[:n-1]
		}
	case k.IsLetter():
		if len(s.Current) < Cols {
			s.Current += string(k)
		}
	}
	return s
}

// submit finalizes the current input into the first empty slot.
func submit(s State) State {
	if len(s.Current) != Cols || !s.Resolved {
		return s
	}
	i := s.Filled()
	if i >= Rows {
		return s
	}
	guess := s.Current
	s.Slots[i] = guess
	s.Current = ""

	if guess == s.Solution {
		s.Phase = PhaseWon
	} else if i == Rows-1 {
		s.Phase = PhaseLost
	}
	return s
}

// Resolve installs the real solution. Only the first call has an effect.
func Resolve(s State, solution string) (State, error) {
	if s.Resolved {
		return s, ErrAlreadyResolved
	}
	w := strings.ToLower(strings.TrimSpace(solution))
	if !ValidWord(w) {
		return s, ErrInvalidSolution
	}
	s.Solution = w
	s.Resolved = true
	return s, nil
}

// ValidWord reports whether w is exactly Cols lowercase letters a–z.
func ValidWord(w string) bool {
	if len(w) != Cols {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
