package akari

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type Cell int8

const (
	Empty Cell = -2
	Wall  Cell = -1
	/*
	 * Values 0 to 4 mean the cell is a wall carrying a required
	 * count of orthogonally adjacent light bulbs. Anything else
	 * is illegal.
	 */
)

// NumberedWall returns the cell for a wall requiring n adjacent bulbs.
func NumberedWall(n int) Cell {
	return Cell(n)
}

func (c Cell) IsEmpty() bool {
	return c == Empty
}

// IsWall reports whether the cell blocks light, numbered or not.
func (c Cell) IsWall() bool {
	return c == Wall || c.IsNumbered()
}

func (c Cell) IsNumbered() bool {
	return 0 <= c && c <= 4
}

// Number returns the required adjacent bulb count and whether the cell
// carries one.
func (c Cell) Number() (int, bool) {
	if !c.IsNumbered() {
		return 0, false
	}
	return int(c), true
}

func (c Cell) Legal() bool {
	return c == Empty || c == Wall || c.IsNumbered()
}

func (c Cell) String() string {
	switch {
	case c == Empty:
		return "."
	case c == Wall:
		return "X"
	case c.IsNumbered():
		return strconv.Itoa(int(c))
	default:
		return "!"
	}
}

// MarshalJSON emits the wire shape every downstream consumer relies on:
// integer 0 for an empty cell, "X" for a wall, "1".."4" for a numbered wall.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch {
	case c == Empty:
		return []byte("0"), nil
	case c == Wall:
		return []byte(`"X"`), nil
	case c.IsNumbered():
		return []byte(`"` + strconv.Itoa(int(c)) + `"`), nil
	default:
		return nil, fmt.Errorf("illegal cell value %d", int8(c))
	}
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		if value != 0 {
			return fmt.Errorf("illegal cell number %v", value)
		}
		*c = Empty
		return nil
	case string:
		if value == "X" {
			*c = Wall
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 4 {
			return fmt.Errorf("illegal cell symbol %q", value)
		}
		*c = NumberedWall(n)
		return nil
	default:
		return fmt.Errorf("illegal cell token %v", v)
	}
}
