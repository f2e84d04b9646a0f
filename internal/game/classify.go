// internal/game/classify.go
//
// Tile classification for submitted guesses.

package game

import "strings"

// Scoring selects how non-exact letters are classified.
type Scoring string

const (
	// ScoringMembership marks a letter present whenever it occurs anywhere
	// in the solution. Repeated guess letters are not counted down, so a
	// guess like "llama" against "hello" can over-credit presents.
	ScoringMembership Scoring = "membership"
	// ScoringStandard is the two-pass Wordle algorithm: each solution letter
	// can satisfy at most one guess letter.
	ScoringStandard Scoring = "standard"
)

// ParseScoring maps a config string to a Scoring. Empty means membership.
func ParseScoring(s string) (Scoring, error) {
	switch Scoring(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScoringMembership:
		return ScoringMembership, nil
	case ScoringStandard:
		return ScoringStandard, nil
	}
	return "", ErrUnknownScoring
}

// Classify compares guess against solution position by position.
// It is pure; the same inputs always yield the same marks.
func Classify(guess, solution string, mode Scoring) []Mark {
	if mode == ScoringStandard {
		return scoreStandard(guess, solution)
	}
	res := make([]Mark, len(guess))
	for i := 0; i < len(guess); i++ {
		switch {
		case i < len(solution) && guess[i] == solution[i]:
			res[i] = MarkExact
		case strings.IndexByte(solution, guess[i]) >= 0:
			res[i] = MarkPresent
		default:
			res[i] = MarkAbsent
		}
	}
	return res
}

// scoreStandard implements the two-pass scoring algorithm.
//
// Pass 1: mark exact matches and count the remaining solution letters.
// Pass 2: a non-exact guess letter is present only while unused copies of
// that letter remain; each match consumes one copy.
func scoreStandard(guess, solution string) []Mark {
	n := len(guess)
	res := make([]Mark, n)

	var counts [26]int
	for i := 0; i < n; i++ {
		if i < len(solution) && guess[i] == solution[i] {
			res[i] = MarkExact
		} else if i < len(solution) {
			if j := idx(solution[i]); j >= 0 {
				counts[j]++
			}
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkExact {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25, or -1.
func idx(c byte) int {
	if c < 'a' || c > 'z' {
		return -1
	}
	return int(c - 'a')
}
