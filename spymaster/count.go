package spymaster

// EstimateCount returns how many targets a clue covers: the targets whose
// similarity beats threshold times the best similarity. The result is always
// in [1, len(sims)] for a non-empty sims.
func EstimateCount(sims []float64, threshold float64) int {
	if len(sims) == 0 {
		return 0
	}

	best := sims[0]
	for _, s := range sims[1:] {
		if s > best {
			best = s
		}
	}

	cutoff := threshold * best
	n := 0
	for _, s := range sims {
		if s > cutoff {
			n++
		}
	}

	// When the best similarity is <= 0 the cutoff can sit above every target,
	// but a clue always promises its best match.
	return max(1, min(n, len(sims)))
}
