package codenames

import "time"

type HintID string

// HintEntry is a single produced hint, along with the board it was produced
// for.
type HintEntry struct {
	ID        HintID      `json:"id"`
	Board     *BoardState `json:"board"`
	Hint      *Hint       `json:"hint"`
	CreatedAt time.Time   `json:"created_at"`
}

func (e *HintEntry) Clone() *HintEntry {
	out := &HintEntry{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
	}
	if e.Board != nil {
		out.Board = e.Board.Clone()
	}
	if e.Hint != nil {
		h := *e.Hint
		out.Hint = &h
	}
	return out
}

// HintLog records every hint given, so a game can be reviewed later. It's not
// consulted when choosing a clue.
type HintLog interface {
	// RecordHint stores the entry, ignoring any ID already set on it, and
	// returns the ID it was stored under.
	RecordHint(*HintEntry) (HintID, error)
	// Hint loads a single entry, or returns ErrHintNotFound.
	Hint(HintID) (*HintEntry, error)
	// Hints returns up to limit entries, newest first. A limit <= 0 returns
	// all of them.
	Hints(limit int) ([]*HintEntry, error)
}
