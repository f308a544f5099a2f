package akari

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellWireShape(t *testing.T) {
	g := mustGrid(t, []string{
		"0..",
		"X2.",
		"...",
	})
	payload, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, `[["0",0,0],["X","2",0],[0,0,0]]`, string(payload))

	var back Grid
	require.NoError(t, json.Unmarshal(payload, &back))
	assert.Equal(t, g, back)
}

func TestCellUnmarshalRejectsJunk(t *testing.T) {
	tests := []string{`"5"`, `"x"`, `7`, `true`, `"-1"`}
	for _, raw := range tests {
		var c Cell
		assert.Error(t, json.Unmarshal([]byte(raw), &c), "raw = %s", raw)
	}
}

func TestCellPredicates(t *testing.T) {
	assert.True(t, Empty.IsEmpty())
	assert.False(t, Empty.IsWall())
	assert.True(t, Wall.IsWall())
	assert.False(t, Wall.IsNumbered())
	assert.True(t, NumberedWall(3).IsWall())
	assert.True(t, NumberedWall(3).IsNumbered())
	assert.False(t, Cell(7).Legal())

	n, ok := NumberedWall(4).Number()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	_, ok = Wall.Number()
	assert.False(t, ok)
}
