// Command codenames-local plays a game of Codenames in the terminal. The AI
// gives hints for both teams and the players type their guesses.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/boardgen"
	"github.com/bcspragu/spymaster/config"
	"github.com/bcspragu/spymaster/cryptorand"
	"github.com/bcspragu/spymaster/dict"
	"github.com/bcspragu/spymaster/game"
	"github.com/bcspragu/spymaster/state"
	"github.com/bcspragu/spymaster/termio"
	"github.com/joho/godotenv"
	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath  = flag.String("config", "spymaster.yaml", "Path to the YAML config file, ignored if missing")
		statePath   = flag.String("state", "", "Board state file to play, a random board is dealt if empty")
		starter     = flag.String("starter", "RED", "Team that goes first, ignored with --state")
		riskName    = flag.String("risk", "", "Risk profile for the AI Spymaster")
		embedder    = flag.String("embedder", "", "Embedder to use: w2v, http or hash")
		modelFile   = flag.String("model_file", "", "Path to a binary word2vec model")
		embedSecret = flag.String("embed_secret", "", "Authorization header for the embedding service")
		seed        = flag.Int64("seed", 0, "Seed for dealing and hints, 0 for random")
		logLevel    = flag.String("log_level", "warn", "zerolog level")
	)
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *embedder != "" {
		cfg.Embedder.Kind = *embedder
	}
	if *modelFile != "" {
		cfg.Embedder.ModelFile = *modelFile
	}
	if *riskName != "" {
		cfg.Risk = *riskName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	r := cryptorand.New()
	if *seed != 0 {
		r = rand.New(rand.NewSource(*seed))
	}

	team, err := codenames.ParseTeam(*starter)
	if err != nil {
		log.Fatal().Err(err).Msg("bad --starter")
	}
	b, team, err := loadBoard(*statePath, team, r)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up board")
	}

	logger := log.Logger
	engine, err := cfg.NewEngine(*embedSecret, r, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up spymaster")
	}

	g, err := game.New(b, team, &game.Config{Spymaster: engine, Risk: cfg.Risk})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start game")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ig := &ioGame{sc: bufio.NewScanner(os.Stdin), game: g, risk: cfg.Risk}
	if err := ig.play(ctx); err != nil {
		log.Fatal().Err(err).Msg("game stopped")
	}
}

// loadBoard reads the starting board from a state file, or deals a new one.
// For a state file the starter is whichever team has nine agents.
func loadBoard(path string, starter codenames.Team, r *rand.Rand) (*codenames.Board, codenames.Team, error) {
	if path == "" {
		b, err := boardgen.New(starter, dict.Board().Words(), r)
		return b, starter, err
	}
	rec, err := state.Load(path)
	if err != nil {
		return nil, codenames.NoTeam, err
	}
	starter = codenames.RedTeam
	if len(rec.BlueWords) > len(rec.RedWords) {
		starter = codenames.BlueTeam
	}
	return rec.Board(), starter, nil
}

type ioGame struct {
	sc   *bufio.Scanner
	game *game.Game
	risk string
}

func (i *ioGame) play(ctx context.Context) error {
	g := i.game
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if g.GuessesLeft() == 0 {
			h, err := g.NextHint(ctx)
			switch {
			case errors.Is(err, codenames.ErrNoEligibleClue):
				fmt.Printf("The %s Spymaster has nothing safe to say, turn passes.\n", g.ActiveTeam())
				if err := g.Pass(); err != nil {
					return err
				}
				continue
			case err != nil:
				return err
			}
			fmt.Printf("\n>>> %s TEAM'S TURN <<<\n", g.ActiveTeam())
			fmt.Printf("[%s | %s] AI Hint: %s (%d)\n", g.ActiveTeam(), codenames.Normalize(i.risk), h.Clue, h.Number)
		}

		termio.PrintPlayerBoard(os.Stdout, g.Board())
		i.printScores()
		fmt.Printf("%s, %d guesses left. Guess a word, or 'pass': ", g.ActiveTeam(), g.GuessesLeft())

		if !i.sc.Scan() {
			if err := i.sc.Err(); err != nil {
				return err
			}
			return errors.New("input closed")
		}
		guess := strings.TrimSpace(i.sc.Text())
		if guess == "" {
			continue
		}
		if strings.EqualFold(guess, "pass") {
			if err := g.Pass(); err != nil {
				return err
			}
			continue
		}

		team := g.ActiveTeam()
		card, err := g.Reveal(guess)
		switch {
		case errors.Is(err, game.ErrNoCard), errors.Is(err, game.ErrRevealed):
			fmt.Println(err)
			continue
		case err != nil:
			return err
		}

		switch card.Agent {
		case team.Agent():
			fmt.Printf("%s - Correct!\n", card.Codename)
		case codenames.Assassin:
			fmt.Printf("%s - ASSASSIN! Team %s loses!\n", card.Codename, team)
		default:
			fmt.Printf("%s - %s, turn ends.\n", card.Codename, card.Agent)
		}
	}

	fmt.Printf("\n=== GAME OVER ===\nTeam %s WINS!\n", g.Winner())
	termio.PrintBoard(os.Stdout, g.Board())
	return nil
}

func (i *ioGame) printScores() {
	red, redTotal := i.game.Score(codenames.RedTeam)
	blue, blueTotal := i.game.Score(codenames.BlueTeam)
	fmt.Printf("RED: %d/%d  BLUE: %d/%d\n", red, redTotal, blue, blueTotal)
}
