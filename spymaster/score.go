package spymaster

import (
	"math"
	"strings"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/risk"
)

const (
	// VetoScore is the score of any clue too close to the assassin. Nothing
	// else can score this low.
	VetoScore = -999.0

	// Targets with a similarity above strongMatch earn strongMatchBonus each.
	strongMatch      = 0.5
	strongMatchBonus = 0.6

	nounBias       = 0.2
	assassinWeight = 2.0
)

// Suffixes that usually mark adverbs, participles and adjectives rather than
// nouns.
var nonNounSuffixes = []string{"ly", "ing", "ed", "ness", "ful", "less"}

// NounBias is +0.2 for words that look like nouns and -0.2 otherwise.
func NounBias(word string) float64 {
	w := strings.ToLower(word)
	for _, suf := range nonNounSuffixes {
		if strings.HasSuffix(w, suf) {
			return -nounBias
		}
	}
	return nounBias
}

// Cosine returns the cosine similarity of a and b. It's 0 if either vector has
// no magnitude, or if they don't have the same dimension.
func Cosine(a, b codenames.Vector) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Scored is a candidate clue and everything that went into its score.
type Scored struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
	// Sims is the similarity to each target word, in board order.
	Sims        []float64 `json:"sims"`
	Penalty     float64   `json:"penalty"`
	AssassinSim float64   `json:"assassin_sim"`
	Vetoed      bool      `json:"vetoed"`
}

// Scorer rates candidate clues against a single board.
type Scorer struct {
	target   []codenames.Vector
	bad      []codenames.Vector
	assassin codenames.Vector
	profile  risk.Profile
}

// NewScorer builds a Scorer. Penalty and neutral words are weighed the same.
// A nil assassin means there's no assassin left on the board.
func NewScorer(target, penalty, neutral []codenames.Vector, assassin codenames.Vector, p risk.Profile) (*Scorer, error) {
	if len(target) == 0 {
		return nil, codenames.ErrNoTargets
	}
	bad := make([]codenames.Vector, 0, len(penalty)+len(neutral))
	bad = append(bad, penalty...)
	bad = append(bad, neutral...)
	return &Scorer{
		target:   target,
		bad:      bad,
		assassin: assassin,
		profile:  p,
	}, nil
}

// Similarities returns the similarity of v to each target word.
func (s *Scorer) Similarities(v codenames.Vector) []float64 {
	sims := make([]float64, len(s.target))
	for i, tv := range s.target {
		sims[i] = Cosine(v, tv)
	}
	return sims
}

// Score rates the clue word with embedding v. Higher is better.
func (s *Scorer) Score(word string, v codenames.Vector) Scored {
	sc := Scored{Word: word, Sims: s.Similarities(v)}

	var targetScore float64
	var strong int
	for _, sim := range sc.Sims {
		targetScore += sim
		if sim > strongMatch {
			strong++
		}
	}

	if len(s.bad) > 0 {
		var total float64
		for _, b := range s.bad {
			total += Cosine(v, b)
		}
		sc.Penalty = total / float64(len(s.bad))
	}

	if s.assassin != nil {
		sc.AssassinSim = Cosine(v, s.assassin)
		if sc.AssassinSim > s.profile.AssassinMax {
			sc.Vetoed = true
			sc.Score = VetoScore
			return sc
		}
	}

	sc.Score = targetScore +
		strongMatchBonus*float64(strong) -
		sc.Penalty*s.profile.PenaltyWeight +
		NounBias(word) -
		sc.AssassinSim*assassinWeight
	return sc
}
