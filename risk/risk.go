// Package risk holds the named presets that trade off covering more target
// words against the chance of pointing at the assassin or the other team.
package risk

import (
	"fmt"
	"strings"
)

// Profile controls how cautious the Spymaster is.
type Profile struct {
	Name string `json:"name" yaml:"name"`
	// AssassinMax is the highest cosine similarity to the assassin a clue may
	// have. Anything above it is vetoed outright.
	AssassinMax float64 `json:"assassin_max" yaml:"assassin_max"`
	// PenaltyWeight scales the mean similarity to opposing and neutral words.
	PenaltyWeight float64 `json:"penalty_weight" yaml:"penalty_weight"`
	// SimilarityThreshold is the fraction of the best target similarity that
	// another target must beat to be counted in the hint number.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
}

var (
	Safe = Profile{
		Name:                "SAFE",
		AssassinMax:         0.30,
		PenaltyWeight:       1.5,
		SimilarityThreshold: 0.85,
	}
	Normal = Profile{
		Name:                "NORMAL",
		AssassinMax:         0.40,
		PenaltyWeight:       1.0,
		SimilarityThreshold: 0.80,
	}
	Aggressive = Profile{
		Name:                "AGGRESSIVE",
		AssassinMax:         0.55,
		PenaltyWeight:       0.7,
		SimilarityThreshold: 0.72,
	}
)

// Validate checks that every field is in range.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile has no name")
	}
	if p.AssassinMax < 0 || p.AssassinMax > 1 {
		return fmt.Errorf("profile %q: assassin_max %v not in [0, 1]", p.Name, p.AssassinMax)
	}
	if p.PenaltyWeight < 0 {
		return fmt.Errorf("profile %q: penalty_weight %v is negative", p.Name, p.PenaltyWeight)
	}
	if p.SimilarityThreshold <= 0 || p.SimilarityThreshold > 1 {
		return fmt.Errorf("profile %q: similarity_threshold %v not in (0, 1]", p.Name, p.SimilarityThreshold)
	}
	return nil
}

// Table is a fixed set of named profiles, plus the one used when a name isn't
// found.
type Table struct {
	profiles []Profile
	fallback Profile
}

// Default returns the stock SAFE/NORMAL/AGGRESSIVE table, falling back to
// NORMAL.
func Default() *Table {
	return &Table{
		profiles: []Profile{Safe, Normal, Aggressive},
		fallback: Normal,
	}
}

// NewTable validates and builds a table. Names are matched case-insensitively,
// so two profiles that differ only in case are rejected.
func NewTable(fallback Profile, profiles ...Profile) (*Table, error) {
	if err := fallback.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fallback: %w", err)
	}
	fallback.Name = normalize(fallback.Name)
	seen := make(map[string]bool)
	t := &Table{fallback: fallback}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		p.Name = normalize(p.Name)
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
		t.profiles = append(t.profiles, p)
	}
	return t, nil
}

// Lookup finds a profile by name. Unknown or empty names resolve to the
// fallback profile, with ok set to false.
func (t *Table) Lookup(name string) (p Profile, ok bool) {
	name = normalize(name)
	for _, p := range t.profiles {
		if p.Name == name {
			return p, true
		}
	}
	return t.fallback, false
}

// Fallback returns the profile used for unknown names.
func (t *Table) Fallback() Profile {
	return t.fallback
}

// Profiles returns every profile in table order.
func (t *Table) Profiles() []Profile {
	out := make([]Profile, len(t.profiles))
	copy(out, t.profiles)
	return out
}

// Names returns the name of every profile in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.profiles))
	for i, p := range t.profiles {
		out[i] = p.Name
	}
	return out
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
