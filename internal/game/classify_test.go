package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMembership(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		solution string
		want     []Mark
	}{
		{
			name:     "exact word",
			guess:    "hello",
			solution: "hello",
			want:     []Mark{MarkExact, MarkExact, MarkExact, MarkExact, MarkExact},
		},
		{
			name:     "world against hello",
			guess:    "world",
			solution: "hello",
			want:     []Mark{MarkAbsent, MarkPresent, MarkAbsent, MarkExact, MarkAbsent},
		},
		{
			name:     "repeated letters over-credit present",
			guess:    "lllll",
			solution: "hello",
			want:     []Mark{MarkPresent, MarkPresent, MarkExact, MarkExact, MarkPresent},
		},
		{
			name:     "nothing shared",
			guess:    "jumpy",
			solution: "hello",
			want:     []Mark{MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.guess, tt.solution, ScoringMembership))
		})
	}
}

func TestClassifyStandard(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		solution string
		want     []Mark
	}{
		{
			name:     "repeated letters counted down",
			guess:    "lllll",
			solution: "hello",
			want:     []Mark{MarkAbsent, MarkAbsent, MarkExact, MarkExact, MarkAbsent},
		},
		{
			name:     "one present copy",
			guess:    "allot",
			solution: "hello",
			want:     []Mark{MarkAbsent, MarkPresent, MarkExact, MarkPresent, MarkAbsent},
		},
		{
			name:     "exact consumes before present",
			guess:    "eerie",
			solution: "there",
			want:     []Mark{MarkPresent, MarkAbsent, MarkPresent, MarkAbsent, MarkExact},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.guess, tt.solution, ScoringStandard)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for _, mode := range []Scoring{ScoringMembership, ScoringStandard} {
		first := Classify("crane", "react", mode)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Classify("crane", "react", mode))
		}
	}
}

func TestParseScoring(t *testing.T) {
	s, err := ParseScoring("")
	require.NoError(t, err)
	assert.Equal(t, ScoringMembership, s)

	s, err = ParseScoring(" Standard ")
	require.NoError(t, err)
	assert.Equal(t, ScoringStandard, s)

	_, err = ParseScoring("fuzzy")
	assert.ErrorIs(t, err, ErrUnknownScoring)
}
