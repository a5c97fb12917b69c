package spymaster

import (
	"math/rand"
	"testing"

	"github.com/bcspragu/spymaster/risk"
)

func TestEstimateCount(t *testing.T) {
	tests := []struct {
		desc      string
		sims      []float64
		threshold float64
		want      int
	}{
		{"single target", []float64{0.9}, 0.85, 1},
		{"single weak target", []float64{0.01}, 0.72, 1},
		{"single negative target", []float64{-0.4}, 0.85, 1},
		{"two close, one far", []float64{0.9, 0.8, 0.1}, 0.8, 2},
		{"on the cutoff doesn't count", []float64{1.0, 0.8}, 0.8, 1},
		{"all equal", []float64{0.5, 0.5, 0.5}, 0.8, 3},
		{"all negative", []float64{-0.2, -0.5}, 0.8, 1},
		{"all zero", []float64{0, 0, 0}, 0.8, 1},
		{"threshold of one", []float64{0.7, 0.7, 0.6}, 1, 1},
		{"empty", nil, 0.8, 0},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if got := EstimateCount(test.sims, test.threshold); got != test.want {
				t.Errorf("EstimateCount(%v, %v) = %d, want %d", test.sims, test.threshold, got, test.want)
			}
		})
	}
}

func TestEstimateCountInRange(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for _, p := range risk.Default().Profiles() {
		for i := 0; i < 500; i++ {
			sims := make([]float64, 1+r.Intn(9))
			for j := range sims {
				sims[j] = r.Float64()*2 - 1
			}
			got := EstimateCount(sims, p.SimilarityThreshold)
			if got < 1 || got > len(sims) {
				t.Fatalf("%s: EstimateCount(%v) = %d, outside [1, %d]", p.Name, sims, got, len(sims))
			}
		}
	}
}
