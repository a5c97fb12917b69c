// Package cryptorand provides a math/rand source that reads from crypto/rand,
// so every run picks from the top clues independently of the last one.
package cryptorand

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// New returns a *rand.Rand that can't be seeded.
func New() *mathrand.Rand {
	return mathrand.New(NewSource())
}

func NewSource() Source {
	return Source{}
}

// Source implements rand.Source64. Seed is a no-op.
type Source struct{}

func (Source) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("cryptorand: failed to read random bytes: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (s Source) Int63() int64 {
	return int64(s.Uint64() & (1<<63 - 1))
}

func (Source) Seed(int64) {}
