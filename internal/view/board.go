// internal/view/board.go

// Package view projects a game.State onto the 6x5 tile grid that the
// terminal client and the browser page render. Project is pure: it never
// mutates the state and can be tested without any screen.
package view

import (
	"github.com/robalobadob/wordle/internal/game"
)

// RowKind says how a row is rendered.
type RowKind string

const (
	RowFinalized RowKind = "finalized" // holds a submitted guess, classified
	RowActive    RowKind = "active"    // first empty slot, shows current input
	RowInactive  RowKind = "inactive"  // not reachable yet, blank
)

// Tile is one cell of the grid. Char is empty for a blank tile.
type Tile struct {
	Char string    `json:"char"`
	Mark game.Mark `json:"mark"`
}

// Row is one guess slot.
type Row struct {
	Kind  RowKind         `json:"kind"`
	Tiles [game.Cols]Tile `json:"tiles"`
}

// Board is the full render model.
type Board struct {
	Rows     [game.Rows]Row `json:"rows"`
	Phase    game.Phase     `json:"phase"`
	Resolved bool           `json:"resolved"`
	// Solution is only revealed once the game is over.
	Solution string `json:"solution,omitempty"`
}

// Project derives the board from s. Only finalized rows are classified.
func Project(s game.State, mode game.Scoring) Board {
	b := Board{Phase: s.Phase, Resolved: s.Resolved}
	if s.Over() {
		b.Solution = s.Solution
	}

	active := s.ActiveRow()
	for i, guess := range s.Slots {
		switch {
		case guess != "":
			b.Rows[i] = finalized(guess, s.Solution, mode)
		case i == active:
			b.Rows[i] = text(RowActive, s.Current)
		default:
			b.Rows[i] = text(RowInactive, "")
		}
	}
	return b
}

func finalized(guess, solution string, mode game.Scoring) Row {
	r := Row{Kind: RowFinalized}
	marks := game.Classify(guess, solution, mode)
	for i := range r.Tiles {
		if i < len(guess) {
			r.Tiles[i] = Tile{Char: guess[i : i+1], Mark: marks[i]}
		} else {
			r.Tiles[i] = Tile{Mark: game.MarkNone}
		}
	}
	return r
}

func text(kind RowKind, s string) Row {
	r := Row{Kind: kind}
	for i := range r.Tiles {
		r.Tiles[i].Mark = game.MarkNone
		if i < len(s) {
			r.Tiles[i].Char = s[i : i+1]
		}
	}
	return r
}

// Word returns the row's letters concatenated.
func (r Row) Word() string {
	var out []byte
	for _, t := range r.Tiles {
		out = append(out, t.Char...)
	}
	return string(out)
}
