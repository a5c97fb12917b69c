// Package spymaster picks a clue and a count for the active team, given a
// board and a risk profile.
//
// A run filters the vocabulary against the board, embeds the candidates and
// the board words, scores every candidate, picks one of the best few at
// random and then decides how many targets the chosen clue covers.
package spymaster

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/cryptorand"
	"github.com/bcspragu/spymaster/risk"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config holds everything an Engine depends on.
type Config struct {
	// Embedder turns words into vectors. Required.
	Embedder codenames.Embedder
	// Vocabulary is the list of candidate clues. Required.
	Vocabulary []string
	// Risks is the table risk names are resolved against. Defaults to
	// risk.Default().
	Risks *risk.Table
	// Rand picks between the top clues. Defaults to a crypto/rand backed
	// source, so runs aren't repeatable.
	Rand *rand.Rand
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Engine gives hints. It's safe for concurrent use.
type Engine struct {
	embedder codenames.Embedder
	vocab    []string
	risks    *risk.Table
	log      zerolog.Logger

	// mu guards r, which isn't safe for concurrent use.
	mu sync.Mutex
	r  *rand.Rand
}

// New validates the config and returns an Engine.
func New(cfg *Config) (*Engine, error) {
	if cfg.Embedder == nil {
		return nil, errors.New("cfg.Embedder cannot be nil")
	}
	if len(cfg.Vocabulary) == 0 {
		return nil, errors.New("cfg.Vocabulary cannot be empty")
	}

	e := &Engine{
		embedder: cfg.Embedder,
		vocab:    cfg.Vocabulary,
		risks:    cfg.Risks,
		r:        cfg.Rand,
		log:      zerolog.Nop(),
	}
	if e.risks == nil {
		e.risks = risk.Default()
	}
	if e.r == nil {
		e.r = cryptorand.New()
	}
	if cfg.Logger != nil {
		e.log = cfg.Logger.With().Str("component", "spymaster").Logger()
	}
	return e, nil
}

// Result is the outcome of a single run.
type Result struct {
	Hint *codenames.Hint
	// Risk is the profile that was actually used, after any fallback.
	Risk risk.Profile
	// Ranked holds every candidate, best first. Empty for a GameOver hint.
	Ranked []Scored
	// Chosen is the candidate the hint was made from.
	Chosen Scored
}

// GiveHint implements codenames.SpymasterAI.
func (e *Engine) GiveHint(ctx context.Context, b *codenames.BoardState) (*codenames.Hint, error) {
	res, err := e.Run(ctx, b)
	if err != nil {
		return nil, err
	}
	return res.Hint, nil
}

// Run picks a hint for b. If there are no target words left it returns the
// GameOver hint without embedding or scoring anything.
func (e *Engine) Run(ctx context.Context, b *codenames.BoardState) (*Result, error) {
	profile, ok := e.risks.Lookup(b.Risk)
	if !ok {
		e.log.Warn().Str("risk", b.Risk).Str("fallback", profile.Name).Msg("unknown risk profile")
	}

	if len(b.Target) == 0 {
		e.log.Info().Str("team", string(b.Team)).Msg("no targets remain")
		return &Result{Hint: codenames.GameOver(), Risk: profile}, nil
	}

	candidates := FilterCandidates(e.vocab, b.ActiveWords())
	if len(candidates) == 0 {
		return nil, fmt.Errorf("all %d vocabulary words are on the board: %w", len(e.vocab), codenames.ErrNoEligibleClue)
	}

	vecs, err := e.embed(ctx, b, candidates)
	if err != nil {
		return nil, err
	}

	scorer, err := NewScorer(vecs.target, vecs.penalty, vecs.neutral, vecs.assassin, profile)
	if err != nil {
		return nil, err
	}

	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		scored[i] = scorer.Score(c, vecs.candidates[i])
	}
	ranked := Rank(scored)
	e.logRanking(ranked)

	e.mu.Lock()
	chosen, err := Select(ranked, e.r)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("all %d candidates were vetoed: %w", len(ranked), err)
	}

	hint := &codenames.Hint{
		Clue:   chosen.Word,
		Number: EstimateCount(chosen.Sims, profile.SimilarityThreshold),
	}
	e.log.Info().
		Str("team", string(b.Team)).
		Str("risk", profile.Name).
		Str("clue", hint.Clue).
		Int("number", hint.Number).
		Float64("score", chosen.Score).
		Msg("gave hint")

	return &Result{
		Hint:   hint,
		Risk:   profile,
		Ranked: ranked,
		Chosen: chosen,
	}, nil
}

type boardVectors struct {
	candidates []codenames.Vector
	target     []codenames.Vector
	penalty    []codenames.Vector
	neutral    []codenames.Vector
	assassin   codenames.Vector
}

// embed fetches every group of vectors. The groups don't depend on each other,
// so they're requested concurrently.
func (e *Engine) embed(ctx context.Context, b *codenames.BoardState, candidates []string) (*boardVectors, error) {
	var (
		out      boardVectors
		assassin []codenames.Vector
	)

	g, ctx := errgroup.WithContext(ctx)
	fetch := func(name string, words []string, dst *[]codenames.Vector) {
		if len(words) == 0 {
			return
		}
		g.Go(func() error {
			vecs, err := e.embedder.Embed(ctx, words)
			if err != nil {
				return fmt.Errorf("%w: %s words: %v", codenames.ErrEmbedding, name, err)
			}
			if len(vecs) != len(words) {
				return fmt.Errorf("%w: %s words: got %d vectors for %d words", codenames.ErrEmbedding, name, len(vecs), len(words))
			}
			*dst = vecs
			return nil
		})
	}

	fetch("candidate", candidates, &out.candidates)
	fetch("target", b.Target, &out.target)
	fetch("penalty", b.Penalty, &out.penalty)
	fetch("neutral", b.Neutral, &out.neutral)
	if b.Assassin != "" {
		fetch("assassin", []string{b.Assassin}, &assassin)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(assassin) == 1 {
		out.assassin = assassin[0]
	}

	if err := checkDims(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// checkDims makes sure every vector has the same, non-zero dimension. Cosine
// similarity between mismatched vectors would silently be zero.
func checkDims(bv *boardVectors) error {
	dim := len(bv.target[0])
	if dim == 0 {
		return fmt.Errorf("%w: zero-length vectors", codenames.ErrEmbedding)
	}
	groups := [][]codenames.Vector{bv.candidates, bv.target, bv.penalty, bv.neutral}
	if bv.assassin != nil {
		groups = append(groups, []codenames.Vector{bv.assassin})
	}
	for _, grp := range groups {
		for _, v := range grp {
			if len(v) != dim {
				return fmt.Errorf("%w: got a %d-dimensional vector, want %d", codenames.ErrEmbedding, len(v), dim)
			}
		}
	}
	return nil
}

func (e *Engine) logRanking(ranked []Scored) {
	if e.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	for i, sc := range ranked {
		if i == 5 {
			break
		}
		e.log.Debug().
			Int("rank", i+1).
			Str("word", sc.Word).
			Float64("score", sc.Score).
			Bool("vetoed", sc.Vetoed).
			Msg("candidate")
	}
}
