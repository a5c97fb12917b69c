package sqldb

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	codenames "github.com/bcspragu/spymaster"
	"github.com/google/uuid"

	_ "github.com/mattn/go-sqlite3"
)

var errClosed = errors.New("sqldb: database is closed")

const schema = `
CREATE TABLE IF NOT EXISTS hints (
	id TEXT PRIMARY KEY,
	team TEXT NOT NULL,
	risk TEXT NOT NULL,
	board TEXT NOT NULL,
	clue TEXT NOT NULL,
	number INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);`

// DB implements codenames.HintLog, backed by a SQLite database.
// NOTE: Since the database doesn't support concurrent writers, we don't
// actually hold the *sql.DB in this struct, we force all callers to get a
// handle via channels.
type DB struct {
	dbChan   chan func(*sql.DB)
	doneChan chan struct{}
	stopped  chan struct{}
	closeFn  func() error
	now      func() time.Time
}

// New creates a new *DB that is stored on disk at the given filename.
func New(fn string) (*DB, error) {
	return NewWithClock(fn, time.Now)
}

// NewWithClock is New, with now used to timestamp entries.
func NewWithClock(fn string, now func() time.Time) (*DB, error) {
	sdb, err := sql.Open("sqlite3", fn)
	if err != nil {
		return nil, err
	}
	if _, err := sdb.Exec(schema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	db := &DB{
		dbChan:   make(chan func(*sql.DB)),
		doneChan: make(chan struct{}),
		stopped:  make(chan struct{}),
		closeFn: func() error {
			return sdb.Close()
		},
		now: now,
	}
	go db.run(sdb)
	return db, nil
}

// run handles all database calls, and ensures that only one thing is happening
// against the database at a time.
func (s *DB) run(sdb *sql.DB) {
	defer close(s.stopped)
	for {
		select {
		case dbFn := <-s.dbChan:
			dbFn(sdb)
		case <-s.doneChan:
			return
		}
	}
}

func (s *DB) Close() error {
	close(s.doneChan)
	<-s.stopped
	return s.closeFn()
}

// do runs fn on the database goroutine and waits for it to finish.
func (s *DB) do(fn func(*sql.DB) error) error {
	errC := make(chan error, 1)
	select {
	case s.dbChan <- func(sdb *sql.DB) { errC <- fn(sdb) }:
	case <-s.doneChan:
		return errClosed
	}
	return <-errC
}

func (s *DB) RecordHint(e *codenames.HintEntry) (codenames.HintID, error) {
	if e.Hint == nil {
		return "", errors.New("entry has no hint")
	}
	board := e.Board
	if board == nil {
		board = &codenames.BoardState{}
	}
	dat, err := json.Marshal(board)
	if err != nil {
		return "", fmt.Errorf("failed to encode board: %w", err)
	}

	hID := codenames.HintID(uuid.NewString())
	err = s.do(func(sdb *sql.DB) error {
		_, err := sdb.Exec(`INSERT INTO hints (id, team, risk, board, clue, number, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(hID), string(board.Team), board.Risk, string(dat),
			e.Hint.Clue, e.Hint.Number, s.now().UnixNano())
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert hint: %w", err)
	}
	return hID, nil
}

func (s *DB) Hint(hID codenames.HintID) (*codenames.HintEntry, error) {
	var e *codenames.HintEntry
	err := s.do(func(sdb *sql.DB) error {
		row := sdb.QueryRow(`SELECT id, board, clue, number, created_at FROM hints WHERE id = ?`, string(hID))
		var err error
		e, err = scanEntry(row)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, codenames.ErrHintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hint %q: %w", hID, err)
	}
	return e, nil
}

func (s *DB) Hints(limit int) ([]*codenames.HintEntry, error) {
	if limit <= 0 {
		// SQLite treats a negative limit as no limit.
		limit = -1
	}

	var out []*codenames.HintEntry
	err := s.do(func(sdb *sql.DB) error {
		rows, err := sdb.Query(`SELECT id, board, clue, number, created_at FROM hints
			ORDER BY rowid DESC LIMIT ?`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load hints: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(sc scanner) (*codenames.HintEntry, error) {
	var (
		id, board string
		created   int64
		h         codenames.Hint
	)
	if err := sc.Scan(&id, &board, &h.Clue, &h.Number, &created); err != nil {
		return nil, err
	}

	var bs codenames.BoardState
	if err := json.Unmarshal([]byte(board), &bs); err != nil {
		return nil, fmt.Errorf("failed to decode board for %q: %w", id, err)
	}
	return &codenames.HintEntry{
		ID:        codenames.HintID(id),
		Board:     &bs,
		Hint:      &h,
		CreatedAt: time.Unix(0, created).UTC(),
	}, nil
}
