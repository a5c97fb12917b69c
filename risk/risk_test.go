package risk

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		desc   string
		in     string
		want   Profile
		wantOK bool
	}{
		{desc: "safe", in: "SAFE", want: Safe, wantOK: true},
		{desc: "lowercase", in: "normal", want: Normal, wantOK: true},
		{desc: "padded mixed case", in: " Aggressive ", want: Aggressive, wantOK: true},
		{desc: "empty falls back", in: "", want: Normal, wantOK: false},
		{desc: "unknown falls back", in: "YOLO", want: Normal, wantOK: false},
	}

	tbl := Default()
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, ok := tbl.Lookup(test.in)
			if ok != test.wantOK {
				t.Errorf("Lookup(%q) ok = %t, want %t", test.in, ok, test.wantOK)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected profile (-want +got)\n%s", diff)
			}
		})
	}
}

func TestDefaultTable(t *testing.T) {
	tbl := Default()

	want := []string{"SAFE", "NORMAL", "AGGRESSIVE"}
	if diff := cmp.Diff(want, tbl.Names()); diff != "" {
		t.Errorf("unexpected names (-want +got)\n%s", diff)
	}

	for _, p := range tbl.Profiles() {
		if err := p.Validate(); err != nil {
			t.Errorf("stock profile %q is invalid: %v", p.Name, err)
		}
	}

	// More aggressive profiles tolerate more assassin similarity and punish
	// bad words less.
	if !(Safe.AssassinMax < Normal.AssassinMax && Normal.AssassinMax < Aggressive.AssassinMax) {
		t.Error("assassin_max isn't increasing from SAFE to AGGRESSIVE")
	}
	if !(Safe.PenaltyWeight > Normal.PenaltyWeight && Normal.PenaltyWeight > Aggressive.PenaltyWeight) {
		t.Error("penalty_weight isn't decreasing from SAFE to AGGRESSIVE")
	}
}

func TestNewTable(t *testing.T) {
	custom := Profile{Name: "cautious", AssassinMax: 0.2, PenaltyWeight: 2, SimilarityThreshold: 0.9}
	tbl, err := NewTable(Normal, Safe, custom)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	got, ok := tbl.Lookup("CAUTIOUS")
	if !ok {
		t.Fatal("custom profile not found")
	}
	if got.AssassinMax != 0.2 {
		t.Errorf("AssassinMax = %v, want 0.2", got.AssassinMax)
	}
	if got := tbl.Fallback(); got != Normal {
		t.Errorf("Fallback() = %+v, want NORMAL", got)
	}

	bad := []struct {
		desc     string
		fallback Profile
		profiles []Profile
	}{
		{"bad fallback", Profile{Name: "X", SimilarityThreshold: 0}, nil},
		{"assassin_max above 1", Normal, []Profile{{Name: "X", AssassinMax: 1.5, SimilarityThreshold: 0.5}}},
		{"negative penalty", Normal, []Profile{{Name: "X", PenaltyWeight: -1, SimilarityThreshold: 0.5}}},
		{"no name", Normal, []Profile{{AssassinMax: 0.5, SimilarityThreshold: 0.5}}},
		{"duplicate", Normal, []Profile{Safe, {Name: "safe", AssassinMax: 0.1, SimilarityThreshold: 0.5}}},
	}
	for _, test := range bad {
		if _, err := NewTable(test.fallback, test.profiles...); err == nil {
			t.Errorf("%s: NewTable returned no error", test.desc)
		}
	}
}
