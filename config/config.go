// Package config loads the optional YAML file that describes how the
// Spymaster is wired: which embedder to use, where the vocabulary lives and
// which risk profiles exist.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/dict"
	"github.com/bcspragu/spymaster/embedclient"
	"github.com/bcspragu/spymaster/hashembed"
	"github.com/bcspragu/spymaster/risk"
	"github.com/bcspragu/spymaster/spymaster"
	"github.com/bcspragu/spymaster/w2v"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	EmbedderW2V  = "w2v"
	EmbedderHTTP = "http"
	EmbedderHash = "hash"
)

// ValidEmbedders lists every supported embedder kind.
var ValidEmbedders = []string{EmbedderW2V, EmbedderHTTP, EmbedderHash}

type Config struct {
	Embedder Embedder `yaml:"embedder"`
	// Vocabulary is a word list file. Empty means the built-in list.
	Vocabulary string `yaml:"vocabulary,omitempty"`
	// Risk is used when a board doesn't name one.
	Risk string `yaml:"risk"`
	// Risks replaces the stock profiles when set. The profile named by Risk
	// is the fallback for unknown names.
	Risks  []risk.Profile `yaml:"risks,omitempty"`
	DBPath string         `yaml:"db_path"`
	Addr   string         `yaml:"addr"`
}

type Embedder struct {
	Kind string `yaml:"kind"`

	// For w2v.
	ModelFile string `yaml:"model_file,omitempty"`

	// For http.
	Endpoint    string `yaml:"endpoint,omitempty"`
	Model       string `yaml:"model,omitempty"`
	Parallelism int    `yaml:"parallelism,omitempty"`

	// For hash.
	Dim int `yaml:"dim,omitempty"`
}

// Default returns the configuration used when there's no file.
func Default() *Config {
	return &Config{
		Embedder: Embedder{
			Kind:        EmbedderW2V,
			ModelFile:   "model.bin",
			Endpoint:    "http://localhost:11434",
			Model:       "nomic-embed-text",
			Parallelism: embedclient.DefaultParallelism,
			Dim:         hashembed.DefaultDim,
		},
		Risk:   risk.Normal.Name,
		DBPath: "spymaster.db",
		Addr:   ":8080",
	}
}

// Load reads the YAML file at path over the defaults. A missing file isn't an
// error, the defaults are returned as-is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.Embedder.Kind = strings.ToLower(strings.TrimSpace(c.Embedder.Kind))
	switch c.Embedder.Kind {
	case EmbedderW2V:
		if c.Embedder.ModelFile == "" {
			return errors.New("embedder.model_file is required for w2v")
		}
	case EmbedderHTTP:
		if c.Embedder.Endpoint == "" || c.Embedder.Model == "" {
			return errors.New("embedder.endpoint and embedder.model are required for http")
		}
	case EmbedderHash:
		if c.Embedder.Dim <= 0 {
			return fmt.Errorf("embedder.dim must be positive, got %d", c.Embedder.Dim)
		}
	default:
		return fmt.Errorf("invalid embedder kind %q (valid: %v)", c.Embedder.Kind, ValidEmbedders)
	}

	if _, err := c.RiskTable(); err != nil {
		return fmt.Errorf("invalid risks: %w", err)
	}
	return nil
}

// RiskTable builds the table of risk profiles. With no custom profiles it's
// the stock table.
func (c *Config) RiskTable() (*risk.Table, error) {
	if len(c.Risks) == 0 {
		return risk.Default(), nil
	}
	name := codenames.Normalize(c.Risk)
	for _, p := range c.Risks {
		if codenames.Normalize(p.Name) == name {
			return risk.NewTable(p, c.Risks...)
		}
	}
	return nil, fmt.Errorf("default risk %q isn't one of the configured profiles", c.Risk)
}

// NewEmbedder builds the configured embedder. A w2v model is loaded fully
// into memory, which can take a while.
func (c *Config) NewEmbedder(secret string) (codenames.Embedder, error) {
	switch c.Embedder.Kind {
	case EmbedderW2V:
		return w2v.New(c.Embedder.ModelFile)
	case EmbedderHTTP:
		return embedclient.New(c.Embedder.Endpoint, c.Embedder.Model,
			embedclient.WithSecret(secret),
			embedclient.WithParallelism(c.Embedder.Parallelism),
		), nil
	case EmbedderHash:
		return hashembed.New(c.Embedder.Dim)
	}
	return nil, fmt.Errorf("invalid embedder kind %q", c.Embedder.Kind)
}

// LoadVocabulary reads the configured word list, or the built-in one.
func (c *Config) LoadVocabulary() (*dict.Dictionary, error) {
	if c.Vocabulary == "" {
		return dict.Default(), nil
	}
	return dict.Load(c.Vocabulary)
}

// NewEngine wires the configured embedder, vocabulary and risk profiles into
// a Spymaster. A nil r means a crypto/rand backed source.
func (c *Config) NewEngine(secret string, r *rand.Rand, logger *zerolog.Logger) (*spymaster.Engine, error) {
	emb, err := c.NewEmbedder(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	vocab, err := c.LoadVocabulary()
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	risks, err := c.RiskTable()
	if err != nil {
		return nil, err
	}
	return spymaster.New(&spymaster.Config{
		Embedder:   emb,
		Vocabulary: vocab.Words(),
		Risks:      risks,
		Rand:       r,
		Logger:     logger,
	})
}
