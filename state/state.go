// Package state reads and writes the JSON files a game front-end exchanges
// with the Spymaster: a state file describing the board, and a hint file with
// the answer.
package state

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	codenames "github.com/bcspragu/spymaster"
)

// Record is the board as the front-end saves it. Words can be in any case.
type Record struct {
	Team         string   `json:"team"`
	Risk         string   `json:"risk,omitempty"`
	RedWords     []string `json:"red_words"`
	BlueWords    []string `json:"blue_words"`
	NeutralWords []string `json:"neutral_words"`
	Assassin     string   `json:"assassin"`
	Revealed     []string `json:"revealed"`
}

// Read decodes a single record from r. Unknown fields are rejected, they're
// almost always a typo in a hand-written file.
func Read(r io.Reader) (*Record, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return &rec, nil
}

// Load reads the record at path.
func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// FromBoard builds the record a front-end would save for b.
func FromBoard(team codenames.Team, risk string, b *codenames.Board) *Record {
	w := b.Words()
	return &Record{
		Team:         string(team),
		Risk:         risk,
		RedWords:     w.Red,
		BlueWords:    w.Blue,
		NeutralWords: w.Neutral,
		Assassin:     w.Assassin,
		Revealed:     w.Revealed,
	}
}

// Board lays the record's words out as cards: red, then blue, then
// bystanders, then the assassin. A word listed twice keeps its first
// affiliation, with the assassin taking priority.
func (r *Record) Board() *codenames.Board {
	revealed := make(map[string]bool)
	for _, w := range codenames.NormalizeAll(r.Revealed) {
		revealed[w] = true
	}

	assassin := codenames.Normalize(r.Assassin)
	seen := map[string]bool{assassin: true}
	b := &codenames.Board{}
	add := func(words []string, ag codenames.Agent) {
		for _, w := range codenames.NormalizeAll(words) {
			if seen[w] {
				continue
			}
			seen[w] = true
			b.Cards = append(b.Cards, codenames.Card{Codename: w, Agent: ag, Revealed: revealed[w]})
		}
	}
	add(r.RedWords, codenames.RedAgent)
	add(r.BlueWords, codenames.BlueAgent)
	add(r.NeutralWords, codenames.Bystander)
	if assassin != "" {
		b.Cards = append(b.Cards, codenames.Card{Codename: assassin, Agent: codenames.Assassin, Revealed: revealed[assassin]})
	}
	return b
}

// BoardState validates the record and partitions it for the active team.
func (r *Record) BoardState() (*codenames.BoardState, error) {
	team, err := codenames.ParseTeam(r.Team)
	if err != nil {
		return nil, err
	}
	return codenames.NewBoardState(team, r.Risk, &codenames.Words{
		Red:      r.RedWords,
		Blue:     r.BlueWords,
		Neutral:  r.NeutralWords,
		Assassin: r.Assassin,
		Revealed: r.Revealed,
	}), nil
}

// Write encodes rec to w, indented for people to read.
func Write(w io.Writer, rec *Record) error {
	return writeJSON(w, rec)
}

// Save writes rec to path.
func Save(path string, rec *Record) error {
	return saveJSON(path, rec)
}

// WriteHint encodes h to w.
func WriteHint(w io.Writer, h *codenames.Hint) error {
	return writeJSON(w, h)
}

// SaveHint writes h to path. The file is replaced in one step, so a front-end
// polling for it never sees a partial hint.
func SaveHint(path string, h *codenames.Hint) error {
	return saveJSON(path, h)
}

// LoadHint reads back a hint written by SaveHint.
func LoadHint(path string) (*codenames.Hint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hint file: %w", err)
	}
	defer f.Close()

	var h codenames.Hint
	if err := json.NewDecoder(f).Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to decode hint: %w", err)
	}
	return &h, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func saveJSON(path string, v interface{}) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	// Cleans up on any failure, it's a no-op after the rename.
	defer os.Remove(f.Name())

	if err := writeJSON(f, v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
