package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ziadkadry99/sitecraft/internal/config"
	"github.com/ziadkadry99/sitecraft/internal/db"
	"github.com/ziadkadry99/sitecraft/internal/editor"
	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/llm"
	"github.com/ziadkadry99/sitecraft/internal/logging"
	"github.com/ziadkadry99/sitecraft/internal/projects"
	"github.com/ziadkadry99/sitecraft/internal/render"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sitecraft init` to create a config file", err)
	}
	if cfg.Model == "" {
		cfg.Model = config.GetPreset(cfg.Provider, cfg.Quality).Model
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug output.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(level, string(cfg.Environment))
}

// createLLMProviderFromConfig creates an LLM provider based on config
// settings, throttled when rate_limit_rpm is set.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimitRPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)
	}
	return provider, nil
}

// newOrchestrator wires the generation service from config.
func newOrchestrator(cfg *config.Config, logger *zap.Logger, opts ...generate.Option) (*generate.Orchestrator, error) {
	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	gcfg := generate.DefaultConfig()
	gcfg.Model = cfg.Model
	gcfg.FallbackModel = cfg.FallbackModel
	gcfg.Temperature = cfg.Temperature
	if cfg.GenerateMaxTokens > 0 {
		gcfg.GenerateMaxTokens = cfg.GenerateMaxTokens
	}
	if cfg.ModifyMaxTokens > 0 {
		gcfg.ModifyMaxTokens = cfg.ModifyMaxTokens
	}
	return generate.New(provider, gcfg, append([]generate.Option{generate.WithLogger(logger)}, opts...)...), nil
}

var _ editor.Generator = (*generate.Orchestrator)(nil)

// workspace is the persistent editing stack shared by the server and MCP
// commands.
type workspace struct {
	db      *db.DB
	store   *projects.Store
	manager *editor.Manager
}

// openWorkspace opens the project database and builds a session manager
// over it. A missing provider key leaves generation disabled rather than
// failing, so saved projects can still be browsed and edited by hand.
func openWorkspace(cfg *config.Config, logger *zap.Logger) (*workspace, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var gen editor.Generator
	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		logger.Warn("generation disabled", zap.Error(err))
	} else {
		gen = orch
	}

	pages, err := render.NewCache(render.New(render.Options{}), cfg.RenderCacheSize)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("creating render cache: %w", err)
	}

	store := projects.NewStore(database)
	manager := editor.NewManager(store, gen, editor.Config{
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
		Pages:        pages,
	})
	return &workspace{db: database, store: store, manager: manager}, nil
}

func (w *workspace) Close() error {
	return w.db.Close()
}

// readDocument loads a document JSON file and checks its invariants.
func readDocument(path string) (*site.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc site.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, site.Wrap(site.InvalidInput, err, "decoding "+path)
	}
	if v := site.Validate(&doc); len(v) > 0 {
		return nil, &site.Error{Kind: site.SchemaViolation, Message: fmt.Sprintf("%s is invalid: %s", path, v[0]), Details: v}
	}
	return &doc, nil
}

// writeDocument saves doc as indented JSON.
func writeDocument(path string, doc *site.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return writeOutput(path, append(data, '\n'))
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
