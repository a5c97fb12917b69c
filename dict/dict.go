// Package dict holds word lists: the vocabulary clues are picked from, and the
// words boards are dealt from.
package dict

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	codenames "github.com/bcspragu/spymaster"
	"github.com/rs/zerolog/log"
)

var (
	//go:embed clues.txt
	defaultClues string

	//go:embed board.txt
	boardWords string
)

// Dictionary is an ordered, de-duplicated list of normalized words.
type Dictionary struct {
	words []string
	index map[string]struct{}
}

// Default returns the built-in clue vocabulary.
func Default() *Dictionary {
	d, err := Parse(strings.NewReader(defaultClues))
	if err != nil {
		panic(fmt.Sprintf("built-in vocabulary is broken: %v", err))
	}
	return d
}

// Board returns the built-in list of codenames boards are dealt from.
func Board() *Dictionary {
	d, err := Parse(strings.NewReader(boardWords))
	if err != nil {
		panic(fmt.Sprintf("built-in board words are broken: %v", err))
	}
	return d
}

// Load reads a word list from file. If the file doesn't exist, the built-in
// vocabulary is used instead.
func Load(file string) (*Dictionary, error) {
	f, err := os.Open(file)
	if os.IsNotExist(err) {
		log.Warn().Str("file", file).Msg("vocabulary file doesn't exist, using the built-in one")
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file %q: %w", file, err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %q: %w", file, err)
	}
	log.Info().Str("file", file).Int("words", d.Len()).Msg("read vocabulary")
	return d, nil
}

// Parse reads one word per line. Blank lines and lines starting with # are
// skipped. An empty list is an error.
func Parse(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{index: make(map[string]struct{})}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w := codenames.Normalize(line)
		if _, ok := d.index[w]; ok {
			continue
		}
		d.index[w] = struct{}{}
		d.words = append(d.words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan words: %w", err)
	}
	if len(d.words) == 0 {
		return nil, fmt.Errorf("no words found")
	}
	return d, nil
}

// Words returns a copy of the list, in file order.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether word is in the list, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.index[codenames.Normalize(word)]
	return ok
}
