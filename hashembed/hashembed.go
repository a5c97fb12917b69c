// Package hashembed is a model-free Embedder. Words are broken into
// character n-grams which are hashed into a fixed number of buckets, so words
// that share spelling end up with similar vectors. It's only good for demos
// and tests, it knows nothing about meaning.
package hashembed

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	codenames "github.com/bcspragu/spymaster"
)

const (
	DefaultDim = 128

	minNgram = 3
	maxNgram = 5
)

var (
	indexSeed = []byte("spymaster-idx::")
	signSeed  = []byte("spymaster-sgn::")
)

// Embedder hashes character n-grams into a fixed-size vector. It needs no
// model file.
type Embedder struct {
	dim int
}

// New returns an Embedder producing dim-dimensional vectors.
func New(dim int) (*Embedder, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	return &Embedder{dim: dim}, nil
}

func (e *Embedder) Dim() int { return e.dim }

// Embed implements codenames.Embedder. The same word always gets the same
// vector.
func (e *Embedder) Embed(ctx context.Context, words []string) ([]codenames.Vector, error) {
	out := make([]codenames.Vector, len(words))
	for i, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := e.vector(w)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", codenames.ErrEmbedding, w, err)
		}
		out[i] = v
	}
	return out, nil
}

func (e *Embedder) vector(word string) (codenames.Vector, error) {
	toks := tokens(word)
	if len(toks) == 0 {
		return nil, errors.New("no letters or digits")
	}

	vec := make(codenames.Vector, e.dim)
	for _, tok := range toks {
		bounded := "<" + tok + ">"
		e.add(vec, bounded)

		runes := []rune(bounded)
		for n := minNgram; n <= maxNgram && n <= len(runes); n++ {
			for i := 0; i+n <= len(runes); i++ {
				e.add(vec, string(runes[i:i+n]))
			}
		}
	}

	var sumSq float64
	for _, x := range vec {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return nil, errors.New("zero vector")
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

func (e *Embedder) add(vec codenames.Vector, feature string) {
	idx := hash(indexSeed, feature) % uint64(e.dim)
	if hash(signSeed, feature)%2 == 1 {
		vec[idx]--
	} else {
		vec[idx]++
	}
}

func tokens(word string) []string {
	return strings.FieldsFunc(strings.ToLower(word), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hash(seed []byte, s string) uint64 {
	h := fnv.New64a()
	h.Write(seed)
	h.Write([]byte(s))
	return h.Sum64()
}
