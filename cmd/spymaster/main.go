// Command spymaster reads a board from a state file, picks a hint and writes
// it to a hint file.
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/bcspragu/spymaster/config"
	"github.com/bcspragu/spymaster/state"
	"github.com/bcspragu/spymaster/termio"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath  = flag.String("config", "spymaster.yaml", "Path to the YAML config file, ignored if missing")
		statePath   = flag.String("state", "state.json", "Path to the board state file")
		hintPath    = flag.String("hint", "hint.json", "Path to write the hint to")
		riskName    = flag.String("risk", "", "Risk profile, overrides the state file")
		embedder    = flag.String("embedder", "", "Embedder to use: w2v, http or hash")
		modelFile   = flag.String("model_file", "", "Path to a binary word2vec model")
		embedURL    = flag.String("embed_url", "", "Base URL of an Ollama-style embedding service")
		embedModel  = flag.String("embed_model", "", "Model name to ask the embedding service for")
		embedSecret = flag.String("embed_secret", "", "Authorization header for the embedding service")
		vocabPath   = flag.String("vocab", "", "Path to a vocabulary file, one clue per line")
		seed        = flag.Int64("seed", 0, "Seed for picking between the top clues, 0 for a random pick")
		explain     = flag.Int("explain", 0, "Print the top N scored clues")
		showBoard   = flag.Bool("show_board", false, "Print the board before the hint")
		logLevel    = flag.String("log_level", "info", "zerolog level")
	)
	flag.Parse()

	initLogging(*logLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	override(&cfg.Embedder.Kind, *embedder)
	override(&cfg.Embedder.ModelFile, *modelFile)
	override(&cfg.Embedder.Endpoint, *embedURL)
	override(&cfg.Embedder.Model, *embedModel)
	override(&cfg.Vocabulary, *vocabPath)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	rec, err := state.Load(*statePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load board")
	}
	override(&rec.Risk, *riskName)
	if rec.Risk == "" {
		rec.Risk = cfg.Risk
	}
	bs, err := rec.BoardState()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid board")
	}

	var r *rand.Rand
	if *seed != 0 {
		r = rand.New(rand.NewSource(*seed))
	}
	logger := log.Logger
	engine, err := cfg.NewEngine(*embedSecret, r, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up spymaster")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := engine.Run(ctx, bs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to pick a hint")
	}

	if err := state.SaveHint(*hintPath, res.Hint); err != nil {
		log.Fatal().Err(err).Msg("failed to write hint")
	}

	if *showBoard {
		termio.PrintBoardState(os.Stdout, bs)
	}
	termio.PrintHint(os.Stdout, bs, res)
	if *explain > 0 && len(res.Ranked) > 0 {
		termio.PrintRanking(os.Stdout, res, *explain)
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func initLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
