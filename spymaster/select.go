package spymaster

import (
	"math/rand"
	"sort"

	codenames "github.com/bcspragu/spymaster"
)

// poolSize is how many of the best clues we pick between, for variety.
const poolSize = 3

// Rank returns a copy of scored, best first. Ties keep their input order.
func Rank(scored []Scored) []Scored {
	out := make([]Scored, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Pool returns the clues Select picks between: the top min(3, n) clues that
// weren't vetoed, best first.
func Pool(ranked []Scored) []Scored {
	var pool []Scored
	for _, sc := range ranked {
		if sc.Vetoed {
			continue
		}
		pool = append(pool, sc)
		if len(pool) == poolSize {
			break
		}
	}
	return pool
}

// Select ranks the candidates and picks uniformly at random from the pool.
func Select(scored []Scored, r *rand.Rand) (Scored, error) {
	pool := Pool(Rank(scored))
	if len(pool) == 0 {
		return Scored{}, codenames.ErrNoEligibleClue
	}
	return pool[r.Intn(len(pool))], nil
}
