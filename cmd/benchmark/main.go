// Command benchmark runs the Spymaster over a fixed set of boards and reports
// how often it picks a clue we'd expect.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/config"
	"github.com/namsral/flag"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		configPath = flag.String("config", "spymaster.yaml", "Path to the YAML config file, ignored if missing")
		modelFile  = flag.String("model_file", "", "Path to a binary word2vec model")
		risks      = flag.String("risks", "SAFE,NORMAL,AGGRESSIVE", "Comma separated risk profiles to run each board with")
		runs       = flag.Int("runs", 20, "Number of hints to ask for per board and profile")
		seed       = flag.Int64("seed", 1, "Seed for picking between the top clues")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *modelFile != "" {
		cfg.Embedder.ModelFile = *modelFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	logger := log.Logger
	engine, err := cfg.NewEngine("", rand.New(rand.NewSource(*seed)), &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up spymaster")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Board", "Risk", "Good", "Bad", "Other", "Skipped", "Avg Number", "Score"})

	ctx := context.Background()
	var total Result
	for _, s := range Scenarios {
		for _, rk := range strings.Split(*risks, ",") {
			var res Result
			for i := 0; i < *runs; i++ {
				h, err := engine.GiveHint(ctx, s.BoardState(rk))
				if err != nil && !errors.Is(err, codenames.ErrNoEligibleClue) {
					log.Fatal().Err(err).Str("board", s.Name).Msg("failed to get hint")
				}
				s.Judge(&res, h)
			}
			table.Append(row(s.Name, codenames.Normalize(rk), res))
			total.Good += res.Good
			total.Bad += res.Bad
			total.Other += res.Other
			total.Skipped += res.Skipped
			total.Targeted += res.Targeted
		}
	}
	table.SetFooter(row("", "total", total))
	table.Render()
}

func row(name, risk string, r Result) []string {
	avg := 0.0
	if given := r.Runs() - r.Skipped; given > 0 {
		avg = float64(r.Targeted) / float64(given)
	}
	return []string{
		name,
		risk,
		fmt.Sprint(r.Good),
		fmt.Sprint(r.Bad),
		fmt.Sprint(r.Other),
		fmt.Sprint(r.Skipped),
		fmt.Sprintf("%.2f", avg),
		fmt.Sprintf("%.3f", Score(r)),
	}
}
