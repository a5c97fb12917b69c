// Command spymaster-server serves hints over HTTP and keeps a log of every
// hint given.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bcspragu/spymaster/config"
	"github.com/bcspragu/spymaster/cryptorand"
	"github.com/bcspragu/spymaster/dict"
	"github.com/bcspragu/spymaster/sqldb"
	"github.com/bcspragu/spymaster/web"
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
		addr        = flag.String("addr", "", "HTTP service address")
		dbPath      = flag.String("db_path", "", "Path to the SQLite DB file")
		authSecret  = flag.String("auth_secret", "", "Secret string that callers must provide")
		embedder    = flag.String("embedder", "", "Embedder to use: w2v, http or hash")
		modelFile   = flag.String("model_file", "", "Path to a binary word2vec model")
		embedURL    = flag.String("embed_url", "", "Base URL of an Ollama-style embedding service")
		embedModel  = flag.String("embed_model", "", "Model name to ask the embedding service for")
		embedSecret = flag.String("embed_secret", "", "Authorization header for the embedding service")
		vocabPath   = flag.String("vocab", "", "Path to a vocabulary file, one clue per line")
		logLevel    = flag.String("log_level", "info", "zerolog level")
	)
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if *authSecret == "" {
		log.Fatal().Msg("--auth_secret must be provided")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	override(&cfg.Addr, *addr)
	override(&cfg.DBPath, *dbPath)
	override(&cfg.Embedder.Kind, *embedder)
	override(&cfg.Embedder.ModelFile, *modelFile)
	override(&cfg.Embedder.Endpoint, *embedURL)
	override(&cfg.Embedder.Model, *embedModel)
	override(&cfg.Vocabulary, *vocabPath)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	logger := log.Logger
	engine, err := cfg.NewEngine(*embedSecret, nil, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up spymaster")
	}
	risks, err := cfg.RiskTable()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load risk profiles")
	}

	db, err := sqldb.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize datastore")
	}

	srv, err := web.New(&web.Config{
		Engine:      engine,
		DB:          db,
		Risks:       risks,
		DefaultRisk: cfg.Risk,
		BoardWords:  dict.Board().Words(),
		Rand:        cryptorand.New(),
		AuthSecret:  *authSecret,
		Logger:      &logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Close()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to shut down cleanly")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("server is running")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("ListenAndServe")
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close datastore")
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
