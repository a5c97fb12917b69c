package memdb

import (
	"errors"
	"testing"
	"time"

	codenames "github.com/bcspragu/spymaster"
	"github.com/google/go-cmp/cmp"
)

func TestRecordHint(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	db := NewWithClock(func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Minute)
	})

	board := &codenames.BoardState{
		Team:     codenames.RedTeam,
		Risk:     "SAFE",
		Target:   []string{"OCEAN", "RIVER"},
		Penalty:  []string{"FIRE"},
		Assassin: "VOLCANO",
	}
	in := &codenames.HintEntry{
		ID:    "ignored",
		Board: board,
		Hint:  &codenames.Hint{Clue: "WATER", Number: 2},
	}

	id, err := db.RecordHint(in)
	if err != nil {
		t.Fatalf("RecordHint: %v", err)
	}
	if id != "hint_0" {
		t.Errorf("got ID %q, want hint_0", id)
	}

	// Changes to the input after the fact aren't seen by the DB.
	in.Hint.Clue = "CHANGED"
	board.Target[0] = "CHANGED"

	got, err := db.Hint(id)
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	want := &codenames.HintEntry{
		ID: "hint_0",
		Board: &codenames.BoardState{
			Team:     codenames.RedTeam,
			Risk:     "SAFE",
			Target:   []string{"OCEAN", "RIVER"},
			Penalty:  []string{"FIRE"},
			Assassin: "VOLCANO",
		},
		Hint:      &codenames.Hint{Clue: "WATER", Number: 2},
		CreatedAt: start.Add(time.Minute),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected entry (-want +got)\n%s", diff)
	}

	if _, err := db.RecordHint(&codenames.HintEntry{Board: board}); err == nil {
		t.Error("RecordHint with no hint returned no error")
	}
}

func TestHintNotFound(t *testing.T) {
	db := New()
	if _, err := db.Hint("hint_0"); !errors.Is(err, codenames.ErrHintNotFound) {
		t.Errorf("Hint returned %v, want ErrHintNotFound", err)
	}
}

func TestHints(t *testing.T) {
	db := New()
	for _, clue := range []string{"WATER", "SEA", "STREAM"} {
		if _, err := db.RecordHint(&codenames.HintEntry{Hint: &codenames.Hint{Clue: clue, Number: 1}}); err != nil {
			t.Fatalf("RecordHint: %v", err)
		}
	}

	tests := []struct {
		desc  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"STREAM", "SEA", "WATER"}},
		{"negative is all", -1, []string{"STREAM", "SEA", "WATER"}},
		{"limited", 2, []string{"STREAM", "SEA"}},
		{"limit over count", 10, []string{"STREAM", "SEA", "WATER"}},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			entries, err := db.Hints(test.limit)
			if err != nil {
				t.Fatalf("Hints: %v", err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Hint.Clue)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected hints (-want +got)\n%s", diff)
			}
		})
	}
}
