package main

import (
	codenames "github.com/bcspragu/spymaster"
)

// Scenario describes a certain setting of a board. Only fill in the words
// that matter for a particular scenario, anything left out just isn't on the
// board.
type Scenario struct {
	Name     string
	Team     codenames.Team
	Red      []string
	Blue     []string
	Neutral  []string
	Assassin string
	// Good lists the clues we'd be happy to see for this board.
	Good []string
	// Bad lists clues that would point at the wrong cards, usually the
	// assassin.
	Bad []string
}

type Result struct {
	Good    int
	Bad     int
	Other   int
	Skipped int
	// Targeted sums the number given with each clue.
	Targeted int
}

func (r *Result) Runs() int {
	return r.Good + r.Bad + r.Other + r.Skipped
}

var (
	Scenarios = []Scenario{
		{
			Name:     "volcano",
			Team:     codenames.RedTeam,
			Red:      []string{"ocean", "river"},
			Blue:     []string{"fire"},
			Assassin: "volcano",
			Good:     []string{"water", "sea", "stream"},
			Bad:      []string{"lava", "ash", "mountain", "heat"},
		},
		{
			Name:     "maple",
			Team:     codenames.BlueTeam,
			Blue:     []string{"maple", "pancake"},
			Red:      []string{"oak"},
			Neutral:  []string{"car"},
			Assassin: "tree",
			Good:     []string{"syrup", "breakfast"},
			Bad:      []string{"leaf", "forest", "wood"},
		},
		{
			Name:     "space",
			Team:     codenames.RedTeam,
			Red:      []string{"moon", "star", "rocket"},
			Blue:     []string{"sun"},
			Neutral:  []string{"bank", "chair"},
			Assassin: "earth",
			Good:     []string{"space", "astronaut", "orbit", "galaxy"},
			Bad:      []string{"planet", "world"},
		},
	}
)

// BoardState builds what the Spymaster sees for s.
func (s Scenario) BoardState(risk string) *codenames.BoardState {
	return codenames.NewBoardState(s.Team, risk, &codenames.Words{
		Red:      s.Red,
		Blue:     s.Blue,
		Neutral:  s.Neutral,
		Assassin: s.Assassin,
	})
}

// Judge records a single hint for s. A nil hint counts as skipped.
func (s Scenario) Judge(r *Result, h *codenames.Hint) {
	if h == nil || h.IsGameOver() {
		r.Skipped++
		return
	}
	r.Targeted += h.Number
	switch {
	case contains(s.Good, h.Clue):
		r.Good++
	case contains(s.Bad, h.Clue):
		r.Bad++
	default:
		r.Other++
	}
}

// Score calculates a measure for how "good" a result is. Higher is better,
// 1.0 is a perfect score.
func Score(r Result) float64 {
	runs := r.Runs()
	if runs == 0 {
		return 0
	}
	points := float64(r.Good) - 2.0*float64(r.Bad) - 0.5*float64(r.Skipped)
	return points / float64(runs)
}

func contains(words []string, w string) bool {
	w = codenames.Normalize(w)
	for _, x := range words {
		if codenames.Normalize(x) == w {
			return true
		}
	}
	return false
}
