// Package game plays out a Codenames board: the AI Spymaster gives the active
// team a hint, the team guesses until it misses or runs out of guesses, and
// the turn passes to the other team.
package game

import (
	"context"
	"errors"
	"fmt"

	codenames "github.com/bcspragu/spymaster"
)

var (
	ErrGameOver   = errors.New("game: the game is over")
	ErrNoGuesses  = errors.New("game: no guesses left, ask for a hint")
	ErrHintActive = errors.New("game: the current hint still has guesses left")
	ErrNoCard     = errors.New("game: no such card")
	ErrRevealed   = errors.New("game: card was already revealed")
)

// Game holds the state of a single game. It isn't safe for concurrent use.
type Game struct {
	board   *codenames.Board
	cfg     *Config
	starter codenames.Team

	active      codenames.Team
	hint        *codenames.Hint
	guessesLeft int
	winner      codenames.Team
}

// Config holds configuration options for a game of Codenames.
type Config struct {
	// Spymaster gives the hints for both teams. Required.
	Spymaster codenames.SpymasterAI
	// Risk is passed along with every board state.
	Risk string
}

// New validates the board and starts a game with starter as the active team.
// The game takes ownership of b and reveals cards on it as they're guessed.
func New(b *codenames.Board, starter codenames.Team, cfg *Config) (*Game, error) {
	if err := validateBoard(b, starter); err != nil {
		return nil, fmt.Errorf("invalid board given: %w", err)
	}
	if cfg == nil || cfg.Spymaster == nil {
		return nil, errors.New("a Spymaster is required")
	}

	g := &Game{
		board:   b,
		cfg:     cfg,
		starter: starter,
		active:  starter,
	}
	g.winner = g.checkWinner()
	return g, nil
}

// validateBoard validates that the board has the correct number of cards of
// each type.
func validateBoard(b *codenames.Board, starter codenames.Team) error {
	if b == nil {
		return errors.New("no board")
	}
	if starter != codenames.RedTeam && starter != codenames.BlueTeam {
		return fmt.Errorf("invalid starting team %q", starter)
	}
	if len(b.Cards) != codenames.Size {
		return fmt.Errorf("board must contain %d codenames, found %d", codenames.Size, len(b.Cards))
	}

	got := make(map[codenames.Agent]int)
	seen := make(map[string]bool)
	for _, c := range b.Cards {
		got[c.Agent]++
		w := codenames.Normalize(c.Codename)
		if seen[w] {
			return fmt.Errorf("%q is on the board twice", c.Codename)
		}
		seen[w] = true
	}

	for ag, wc := range want(starter) {
		if gc := got[ag]; gc != wc {
			return fmt.Errorf("got %d cards of type %q, want %d", gc, ag, wc)
		}
	}
	return nil
}

func want(starter codenames.Team) map[codenames.Agent]int {
	w := map[codenames.Agent]int{
		codenames.RedAgent:  9,
		codenames.BlueAgent: 8,
		codenames.Bystander: 7,
		codenames.Assassin:  1,
	}
	if starter == codenames.BlueTeam {
		w[codenames.BlueAgent], w[codenames.RedAgent] = 9, 8
	}
	return w
}

// Board returns the board being played. Callers must not modify it.
func (g *Game) Board() *codenames.Board { return g.board }

func (g *Game) ActiveTeam() codenames.Team { return g.active }

// Hint returns the hint the active team is guessing on, nil between turns.
func (g *Game) Hint() *codenames.Hint { return g.hint }

func (g *Game) GuessesLeft() int { return g.guessesLeft }

// Winner returns the winning team, or NoTeam while the game is still going.
func (g *Game) Winner() codenames.Team { return g.winner }

func (g *Game) Over() bool { return g.winner != codenames.NoTeam }

// Score returns how many of team's agents have been revealed, and how many it
// needs to win.
func (g *Game) Score(team codenames.Team) (revealed, total int) {
	ag := team.Agent()
	for _, c := range g.board.Cards {
		if c.Agent != ag {
			continue
		}
		total++
		if c.Revealed {
			revealed++
		}
	}
	return revealed, total
}

// BoardState is what the Spymaster sees for the active team.
func (g *Game) BoardState() *codenames.BoardState {
	return codenames.NewBoardState(g.active, g.cfg.Risk, g.board.Words())
}

// NextHint asks the Spymaster for the active team's hint. The team gets one
// guess more than the hint's number.
func (g *Game) NextHint(ctx context.Context) (*codenames.Hint, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	if g.guessesLeft > 0 {
		return nil, ErrHintActive
	}

	h, err := g.cfg.Spymaster.GiveHint(ctx, g.BoardState())
	if err != nil {
		return nil, fmt.Errorf("GiveHint on %q: %w", g.active, err)
	}
	g.hint = h
	g.guessesLeft = h.Number + 1
	if h.IsGameOver() {
		g.guessesLeft = 0
	}
	return h, nil
}

// Reveal guesses word for the active team and returns the card it turned
// over. A miss, or running out of guesses, passes the turn. Revealing the
// assassin loses the game for the active team.
func (g *Game) Reveal(word string) (codenames.Card, error) {
	if g.Over() {
		return codenames.Card{}, ErrGameOver
	}
	if g.guessesLeft <= 0 {
		return codenames.Card{}, ErrNoGuesses
	}

	card, err := g.reveal(word)
	if err != nil {
		return codenames.Card{}, err
	}
	g.guessesLeft--

	if card.Agent == codenames.Assassin {
		g.winner = g.active.Other()
		g.endTurn()
		return card, nil
	}

	// Check if their guess ended the game.
	if g.winner = g.checkWinner(); g.Over() {
		g.endTurn()
		return card, nil
	}

	if card.Agent != g.active.Agent() || g.guessesLeft == 0 {
		g.endTurn()
	}
	return card, nil
}

// Pass ends the active team's turn early.
func (g *Game) Pass() error {
	if g.Over() {
		return ErrGameOver
	}
	g.endTurn()
	return nil
}

func (g *Game) reveal(word string) (codenames.Card, error) {
	w := codenames.Normalize(word)
	for i, card := range g.board.Cards {
		if codenames.Normalize(card.Codename) != w {
			continue
		}
		if card.Revealed {
			return codenames.Card{}, fmt.Errorf("%q: %w", word, ErrRevealed)
		}
		g.board.Cards[i].Revealed = true
		return g.board.Cards[i], nil
	}
	return codenames.Card{}, fmt.Errorf("%q: %w", word, ErrNoCard)
}

func (g *Game) endTurn() {
	g.active = g.active.Other()
	g.hint = nil
	g.guessesLeft = 0
}

// checkWinner looks for a team with every agent revealed. The assassin is
// handled in Reveal, since the loser is whoever turned it over.
func (g *Game) checkWinner() codenames.Team {
	got := make(map[codenames.Agent]int)
	for _, c := range g.board.Cards {
		if c.Revealed {
			got[c.Agent]++
		}
	}

	w := want(g.starter)
	switch {
	case got[codenames.RedAgent] == w[codenames.RedAgent]:
		return codenames.RedTeam
	case got[codenames.BlueAgent] == w[codenames.BlueAgent]:
		return codenames.BlueTeam
	}
	return codenames.NoTeam
}
