package state

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	codenames "github.com/bcspragu/spymaster"
	"github.com/google/go-cmp/cmp"
)

const sampleState = `{
  "team": "blue",
  "risk": "safe",
  "red_words": ["ocean", "river"],
  "blue_words": ["fire", "Ember"],
  "neutral_words": ["desk", "ocean"],
  "assassin": "volcano",
  "revealed": ["EMBER"]
}`

func TestRead(t *testing.T) {
	rec, err := Read(strings.NewReader(sampleState))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	got, err := rec.BoardState()
	if err != nil {
		t.Fatalf("BoardState: %v", err)
	}
	want := &codenames.BoardState{
		Team:     codenames.BlueTeam,
		Risk:     "SAFE",
		Target:   []string{"FIRE"},
		Penalty:  []string{"OCEAN", "RIVER"},
		Neutral:  []string{"DESK"},
		Assassin: "VOLCANO",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected board state (-want +got)\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		desc string
		in   string
	}{
		{"not JSON", "team: RED"},
		{"unknown field", `{"team": "RED", "red_wrods": []}`},
		{"wrong type", `{"team": "RED", "red_words": "OCEAN"}`},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if _, err := Read(strings.NewReader(test.in)); err == nil {
				t.Error("Read returned no error")
			}
		})
	}

	rec, err := Read(strings.NewReader(`{"team": "GREEN"}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := rec.BoardState(); err == nil {
		t.Error("BoardState with an unknown team returned no error")
	}
}

func TestMissingFieldsDefault(t *testing.T) {
	rec, err := Read(strings.NewReader(`{"red_words": ["ocean"]}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got, err := rec.BoardState()
	if err != nil {
		t.Fatalf("BoardState: %v", err)
	}
	want := &codenames.BoardState{
		Team:   codenames.RedTeam,
		Target: []string{"OCEAN"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected board state (-want +got)\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	board := &codenames.Board{Cards: []codenames.Card{
		{Codename: "OCEAN", Agent: codenames.RedAgent},
		{Codename: "FIRE", Agent: codenames.BlueAgent, Revealed: true},
		{Codename: "DESK", Agent: codenames.Bystander},
		{Codename: "VOLCANO", Agent: codenames.Assassin},
	}}
	rec := FromBoard(codenames.RedTeam, "NORMAL", board)

	statePath := filepath.Join(dir, "state.json")
	if err := Save(statePath, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(statePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Record{
		Team:         "RED",
		Risk:         "NORMAL",
		RedWords:     []string{"OCEAN"},
		BlueWords:    []string{"FIRE"},
		NeutralWords: []string{"DESK"},
		Assassin:     "VOLCANO",
		Revealed:     []string{"FIRE"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected record (-want +got)\n%s", diff)
	}

	hintPath := filepath.Join(dir, "hint.json")
	if err := SaveHint(hintPath, &codenames.Hint{Clue: "WATER", Number: 2}); err != nil {
		t.Fatalf("SaveHint: %v", err)
	}
	// Overwrites in place.
	if err := SaveHint(hintPath, codenames.GameOver()); err != nil {
		t.Fatalf("SaveHint: %v", err)
	}
	h, err := LoadHint(hintPath)
	if err != nil {
		t.Fatalf("LoadHint: %v", err)
	}
	if diff := cmp.Diff(codenames.GameOver(), h); diff != "" {
		t.Errorf("unexpected hint (-want +got)\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d files in the directory, want 2, temp files were left behind", len(entries))
	}
}

func TestWriteHint(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHint(&buf, &codenames.Hint{Clue: "WATER", Number: 2}); err != nil {
		t.Fatalf("WriteHint: %v", err)
	}
	want := "{\n  \"clue\": \"WATER\",\n  \"number\": 2\n}\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("unexpected output (-want +got)\n%s", diff)
	}
}

func TestRecordBoard(t *testing.T) {
	rec, err := Read(strings.NewReader(sampleState))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := &codenames.Board{Cards: []codenames.Card{
		{Codename: "OCEAN", Agent: codenames.RedAgent},
		{Codename: "RIVER", Agent: codenames.RedAgent},
		{Codename: "FIRE", Agent: codenames.BlueAgent},
		{Codename: "EMBER", Agent: codenames.BlueAgent, Revealed: true},
		{Codename: "DESK", Agent: codenames.Bystander},
		{Codename: "VOLCANO", Agent: codenames.Assassin},
	}}
	if diff := cmp.Diff(want, rec.Board()); diff != "" {
		t.Errorf("unexpected board (-want +got)\n%s", diff)
	}
}
