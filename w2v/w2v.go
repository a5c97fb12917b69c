// Package w2v embeds words with a pre-trained word2vec model.
package w2v

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	codenames "github.com/bcspragu/spymaster"

	"code.sajari.com/word2vec"
	"github.com/rs/zerolog/log"
)

// Embedder looks words up in an in-memory word2vec model. It's safe for
// concurrent use, the model is read-only once loaded.
type Embedder struct {
	model *word2vec.Model
}

// New loads the binary model at file.
func New(file string) (*Embedder, error) {
	log.Info().Str("file", file).Msg("opening w2v model")
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file %q: %w", file, err)
	}
	defer f.Close()

	e, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model file %q: %w", file, err)
	}
	log.Info().Int("words", e.model.Size()).Int("dim", e.model.Dim()).Msg("read w2v model")
	return e, nil
}

// FromReader reads a binary model from r.
func FromReader(r io.Reader) (*Embedder, error) {
	model, err := word2vec.FromReader(r)
	if err != nil {
		return nil, err
	}
	return &Embedder{model: model}, nil
}

// Embed implements codenames.Embedder. Every word has to be in the model in
// one of its forms, or the whole call fails.
func (e *Embedder) Embed(ctx context.Context, words []string) ([]codenames.Vector, error) {
	out := make([]codenames.Vector, len(words))
	for i, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := e.lookup(w)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Embedder) lookup(word string) (codenames.Vector, error) {
	for _, parts := range forms(word) {
		expr := word2vec.Expr{}
		for _, p := range parts {
			expr.Add(1/float32(len(parts)), p)
		}
		v, err := e.model.Eval(expr)
		if err != nil {
			continue
		}
		out := make(codenames.Vector, len(v))
		copy(out, v)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q isn't in the model", codenames.ErrEmbedding, word)
}

// forms lists the ways word can be looked up, in order of preference. Each
// entry is a set of model words whose vectors get averaged. Multi-word
// codenames like ICE_CREAM are tried as-is, squashed together, then as the
// average of their parts.
func forms(word string) [][]string {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return nil
	}
	out := [][]string{{w}}

	parts := strings.FieldsFunc(w, func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
	if len(parts) < 2 {
		return out
	}
	out = append(out, []string{strings.Join(parts, "")})
	return append(out, parts)
}
