package codenames

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

const (
	// Rows is the number of rows of cards in Codenames.
	Rows = 5
	// Columns is the number of columns of cards in Codenames.
	Columns = 5
	// Size is the total number of cards on a Codenames board.
	Size = Rows * Columns

	// GameOverClue is the clue given when the active team has nothing left to
	// guess.
	GameOverClue = "GAME_OVER"
)

var (
	ErrNoTargets      = errors.New("codenames: no target words remain")
	ErrNoEligibleClue = errors.New("codenames: no eligible clue")
	ErrEmbedding      = errors.New("codenames: embedding failed")
	ErrHintNotFound   = errors.New("codenames: hint not found")
)

// Vector is a word embedding. Vectors for a single selection run all come from
// the same Embedder, so they share a dimension.
type Vector []float32

// Embedder maps words to vectors. Implementations return exactly one vector per
// input word, in the same order, and must be deterministic for a given word.
type Embedder interface {
	Embed(ctx context.Context, words []string) ([]Vector, error)
}

type SpymasterAI interface {
	// GiveHint takes in a board state and returns a hint for the active team.
	GiveHint(context.Context, *BoardState) (*Hint, error)
}

// Hint is a clue word and a count from the Spymaster.
type Hint struct {
	Clue   string `json:"clue"`
	Number int    `json:"number"`
}

// GameOver returns the hint given when there are no target words left.
func GameOver() *Hint {
	return &Hint{Clue: GameOverClue, Number: 0}
}

// IsGameOver reports whether h is the GameOver sentinel.
func (h *Hint) IsGameOver() bool {
	return h.Clue == GameOverClue && h.Number == 0
}

func (h *Hint) String() string {
	return h.Clue + " " + strconv.Itoa(h.Number)
}

// Normalize puts a word into the canonical form used for every comparison:
// trimmed and uppercased.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// NormalizeAll normalizes each word, dropping any that end up empty.
func NormalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Agent is the affiliation of a codename.
type Agent int

func (a Agent) String() string {
	switch a {
	case UnknownAgent:
		return "Agent Status Unknown"
	case RedAgent:
		return "Red Agent"
	case BlueAgent:
		return "Blue Agent"
	case Bystander:
		return "Bystander"
	case Assassin:
		return "Assassin"
	}
	return ""
}

const (
	// UnknownAgent means we don't know who the codename belongs to.
	UnknownAgent Agent = iota
	// RedAgent means the codename belongs to an agent on the red team.
	RedAgent
	// BlueAgent means the codename belongs to an agent on the blue team.
	BlueAgent
	// Bystander means the codename doesn't belong to an agent.
	Bystander
	// Assassin means the codename belongs to the assassin.
	Assassin
)

type Team string

const (
	// NoTeam is an error case.
	NoTeam   = Team("")
	RedTeam  = Team("RED")
	BlueTeam = Team("BLUE")
)

// ParseTeam reads a team name case-insensitively. An empty name is the red
// team, which gives clues first when nobody says otherwise.
func ParseTeam(s string) (Team, error) {
	switch Normalize(s) {
	case "", string(RedTeam):
		return RedTeam, nil
	case string(BlueTeam):
		return BlueTeam, nil
	}
	return NoTeam, errors.New("codenames: unknown team " + strconv.Quote(s))
}

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == BlueTeam {
		return RedTeam
	}
	return BlueTeam
}

// Agent returns the card affiliation that belongs to the team.
func (t Team) Agent() Agent {
	switch t {
	case RedTeam:
		return RedAgent
	case BlueTeam:
		return BlueAgent
	}
	return UnknownAgent
}
