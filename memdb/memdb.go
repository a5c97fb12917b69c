// Package memdb is an in-memory codenames.HintLog, for tests and for running
// without a database.
package memdb

import (
	"fmt"
	"sync"
	"time"

	codenames "github.com/bcspragu/spymaster"
)

type idNamespace string

const hintID = idNamespace("hint")

type DB struct {
	now func() time.Time

	mu    sync.Mutex
	ids   map[idNamespace]int
	hints map[codenames.HintID]*codenames.HintEntry
	// order holds IDs oldest first.
	order []codenames.HintID
}

func New() *DB {
	return NewWithClock(time.Now)
}

// NewWithClock uses now to timestamp entries.
func NewWithClock(now func() time.Time) *DB {
	return &DB{
		now:   now,
		ids:   make(map[idNamespace]int),
		hints: make(map[codenames.HintID]*codenames.HintEntry),
	}
}

func (db *DB) RecordHint(e *codenames.HintEntry) (codenames.HintID, error) {
	if e.Hint == nil {
		return "", fmt.Errorf("entry has no hint")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	hID := codenames.HintID(db.newID(hintID))

	ec := e.Clone()
	ec.ID = hID
	ec.CreatedAt = db.now()
	db.hints[hID] = ec
	db.order = append(db.order, hID)

	return hID, nil
}

func (db *DB) Hint(hID codenames.HintID) (*codenames.HintEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e, ok := db.hints[hID]
	if !ok {
		return nil, codenames.ErrHintNotFound
	}

	return e.Clone(), nil
}

func (db *DB) Hints(limit int) ([]*codenames.HintEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []*codenames.HintEntry
	for i := len(db.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, db.hints[db.order[i]].Clone())
	}
	return out, nil
}

func (db *DB) newID(ns idNamespace) string {
	idx := db.ids[ns]
	id := fmt.Sprintf("%s_%d", ns, idx)
	db.ids[ns]++
	return id
}
