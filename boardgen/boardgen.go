// Package boardgen deals random Codenames boards.
package boardgen

import (
	"fmt"
	"math/rand"

	codenames "github.com/bcspragu/spymaster"
)

var baseAgents = []codenames.Agent{
	codenames.RedAgent,
	codenames.RedAgent,
	codenames.RedAgent,
	codenames.RedAgent,
	codenames.RedAgent,
	codenames.RedAgent,
	codenames.RedAgent,
	codenames.RedAgent,
	codenames.BlueAgent,
	codenames.BlueAgent,
	codenames.BlueAgent,
	codenames.BlueAgent,
	codenames.BlueAgent,
	codenames.BlueAgent,
	codenames.BlueAgent,
	codenames.BlueAgent,
	codenames.Bystander,
	codenames.Bystander,
	codenames.Bystander,
	codenames.Bystander,
	codenames.Bystander,
	codenames.Bystander,
	codenames.Bystander,
	codenames.Assassin,
}

// New deals a board from words. The starting team gets the ninth agent. The
// same words and seed always deal the same board.
func New(starter codenames.Team, words []string, r *rand.Rand) (*codenames.Board, error) {
	agents := make([]codenames.Agent, len(baseAgents), codenames.Size)
	copy(agents, baseAgents)

	switch starter {
	case codenames.RedTeam:
		agents = append(agents, codenames.RedAgent)
	case codenames.BlueTeam:
		agents = append(agents, codenames.BlueAgent)
	default:
		return nil, fmt.Errorf("invalid starting team %q", starter)
	}

	uniq := dedupe(words)
	if len(uniq) < codenames.Size {
		return nil, fmt.Errorf("need %d distinct words, only have %d", codenames.Size, len(uniq))
	}

	// Pick words at random from our list.
	var selected []string
	for _, idx := range r.Perm(len(uniq))[:codenames.Size] {
		selected = append(selected, uniq[idx])
	}

	var cards []codenames.Card
	for i, idx := range r.Perm(len(agents)) {
		cards = append(cards, codenames.Card{
			Agent:    agents[idx],
			Codename: selected[i],
		})
	}

	return &codenames.Board{Cards: cards}, nil
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range codenames.NormalizeAll(words) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
