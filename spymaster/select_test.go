package spymaster

import (
	"errors"
	"math/rand"
	"testing"

	codenames "github.com/bcspragu/spymaster"
	"github.com/google/go-cmp/cmp"
)

func TestRank(t *testing.T) {
	in := []Scored{
		{Word: "A", Score: 1},
		{Word: "B", Score: 3},
		{Word: "C", Score: 1},
		{Word: "D", Score: VetoScore, Vetoed: true},
		{Word: "E", Score: 2},
		{Word: "F", Score: 1},
	}
	var got []string
	for _, sc := range Rank(in) {
		got = append(got, sc.Word)
	}
	// Ties keep their input order.
	want := []string{"B", "E", "A", "C", "F", "D"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected ranking (-want +got)\n%s", diff)
	}
	if in[0].Word != "A" {
		t.Error("Rank modified its input")
	}
}

func TestPool(t *testing.T) {
	tests := []struct {
		desc string
		in   []Scored
		want []string
	}{
		{
			desc: "top three",
			in:   []Scored{{Word: "A", Score: 4}, {Word: "B", Score: 3}, {Word: "C", Score: 2}, {Word: "D", Score: 1}},
			want: []string{"A", "B", "C"},
		},
		{
			desc: "fewer than three",
			in:   []Scored{{Word: "A", Score: 4}, {Word: "B", Score: 3}},
			want: []string{"A", "B"},
		},
		{
			desc: "vetoed clues never make the pool",
			in: []Scored{
				{Word: "A", Score: 4},
				{Word: "B", Score: VetoScore, Vetoed: true},
				{Word: "C", Score: VetoScore, Vetoed: true},
			},
			want: []string{"A"},
		},
		{
			desc: "everything vetoed",
			in:   []Scored{{Word: "A", Score: VetoScore, Vetoed: true}},
			want: nil,
		},
		{
			desc: "nothing at all",
			want: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var got []string
			for _, sc := range Pool(Rank(test.in)) {
				got = append(got, sc.Word)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected pool (-want +got)\n%s", diff)
			}
		})
	}
}

func TestSelectUniform(t *testing.T) {
	in := []Scored{
		{Word: "A", Score: 4},
		{Word: "B", Score: 3},
		{Word: "C", Score: 2},
		{Word: "D", Score: 1},
	}
	r := rand.New(rand.NewSource(0))

	counts := make(map[string]int)
	const n = 3000
	for i := 0; i < n; i++ {
		sc, err := Select(in, r)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		counts[sc.Word]++
	}

	if counts["D"] != 0 {
		t.Errorf("fourth-best clue was picked %d times", counts["D"])
	}
	for _, w := range []string{"A", "B", "C"} {
		if c := counts[w]; c < n/3-200 || c > n/3+200 {
			t.Errorf("%q was picked %d times out of %d, want about %d", w, c, n, n/3)
		}
	}
}

func TestSelectDeterministicWithSeed(t *testing.T) {
	in := []Scored{{Word: "A", Score: 3}, {Word: "B", Score: 2}, {Word: "C", Score: 1}}
	pick := func() []string {
		r := rand.New(rand.NewSource(7))
		var out []string
		for i := 0; i < 20; i++ {
			sc, err := Select(in, r)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			out = append(out, sc.Word)
		}
		return out
	}
	if diff := cmp.Diff(pick(), pick()); diff != "" {
		t.Errorf("same seed gave different picks (-first +second)\n%s", diff)
	}
}

func TestSelectNoCandidates(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	if _, err := Select(nil, r); !errors.Is(err, codenames.ErrNoEligibleClue) {
		t.Errorf("Select(nil) returned %v, want ErrNoEligibleClue", err)
	}
	vetoed := []Scored{{Word: "A", Score: VetoScore, Vetoed: true}}
	if _, err := Select(vetoed, r); !errors.Is(err, codenames.ErrNoEligibleClue) {
		t.Errorf("Select(all vetoed) returned %v, want ErrNoEligibleClue", err)
	}
}
