package akari

import "fmt"

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// Profile bundles the generation parameters and acceptance thresholds of
// one difficulty level. Pure data, no lifecycle.
type Profile struct {
	WallRatio     float64
	NumberRatio   float64
	MaxAttempts   int
	MinNumbered   int
	MinWhiteRatio float64
}

var profiles = map[Difficulty]Profile{
	Easy:   {WallRatio: 0.2, NumberRatio: 0.4, MaxAttempts: 100, MinNumbered: 1, MinWhiteRatio: 0.5},
	Medium: {WallRatio: 0.25, NumberRatio: 0.5, MaxAttempts: 150, MinNumbered: 2, MinWhiteRatio: 0.4},
	Hard:   {WallRatio: 0.3, NumberRatio: 0.6, MaxAttempts: 200, MinNumbered: 3, MinWhiteRatio: 0.3},
	Expert: {WallRatio: 0.35, NumberRatio: 0.7, MaxAttempts: 300, MinNumbered: 4, MinWhiteRatio: 0.25},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := profiles[d]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

func (d Difficulty) Profile() (Profile, error) {
	p, ok := profiles[d]
	if !ok {
		return Profile{}, fmt.Errorf("unknown difficulty %q", string(d))
	}
	return p, nil
}

// Difficulties returns every known level, easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Expert}
}
