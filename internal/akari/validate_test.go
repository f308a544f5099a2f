package akari

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want bool
	}{
		{
			name: "all empty",
			rows: []string{"...", "...", "..."},
			want: true,
		},
		{
			name: "plain walls only",
			rows: []string{"X..", ".X.", "..X"},
			want: true,
		},
		{
			name: "achievable numbers",
			rows: []string{
				"1...",
				"....",
				"..2.",
				"....",
			},
			want: true,
		},
		{
			name: "corner number over capacity",
			rows: []string{
				"3...",
				"....",
				"....",
				"....",
			},
			want: false,
		},
		{
			name: "number boxed in by walls",
			rows: []string{
				".X..",
				"X2X.",
				".X..",
				"....",
			},
			want: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := mustGrid(t, test.rows)
			assert.Equal(t, test.want, g.Valid())
		})
	}
}

func TestValidRejectsIllegalSymbol(t *testing.T) {
	g := NewGrid(3)
	g[1][1] = Cell(7)
	assert.False(t, g.Valid())
}
