// Command boardgen deals a random board and writes it out as a state file.
package main

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/boardgen"
	"github.com/bcspragu/spymaster/cryptorand"
	"github.com/bcspragu/spymaster/dict"
	"github.com/bcspragu/spymaster/state"
	"github.com/bcspragu/spymaster/termio"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

var (
	agentNames = map[codenames.Agent]string{
		codenames.RedAgent:  "red",
		codenames.BlueAgent: "blue",
		codenames.Bystander: "bystander",
		codenames.Assassin:  "assassin",
	}
)

func main() {
	var (
		starter   = flag.String("starter", "RED", "Team that goes first, and gets nine agents")
		risk      = flag.String("risk", "", "Risk profile to put in the state file")
		out       = flag.String("out", "state.json", "Where to write the state file, - for stdout")
		wordsPath = flag.String("words", "", "Board word list, one per line. Defaults to the built-in list")
		seed      = flag.Int64("seed", 0, "Seed for dealing, 0 for a random board")
		show      = flag.Bool("print", false, "Print the board grid")
		compact   = flag.Bool("compact", false, "Print the board as word:agent pairs instead of writing a state file")
	)
	flag.Parse()

	team, err := codenames.ParseTeam(*starter)
	if err != nil {
		log.Fatal().Err(err).Msg("bad --starter")
	}

	words := dict.Board()
	if *wordsPath != "" {
		if words, err = dict.Load(*wordsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load board words")
		}
	}

	r := cryptorand.New()
	if *seed != 0 {
		r = rand.New(rand.NewSource(*seed))
	}

	bd, err := boardgen.New(team, words.Words(), r)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to deal board")
	}

	if *show {
		termio.PrintBoard(os.Stderr, bd)
	}

	if *compact {
		var buf bytes.Buffer
		for i, card := range bd.Cards {
			buf.WriteString(fmt.Sprintf("%s:%s", card.Codename, agentNames[card.Agent]))
			if i != len(bd.Cards)-1 {
				buf.WriteString(",")
			}
		}
		fmt.Println(buf.String())
		return
	}

	rec := state.FromBoard(team, *risk, bd)
	if *out == "-" {
		err = state.Write(os.Stdout, rec)
	} else {
		err = state.Save(*out, rec)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write state")
	}
}
