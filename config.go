package hirepg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"

	"github.com/hirepg/hirepg/compaction"
	"github.com/hirepg/hirepg/hooks"
)

// Config holds the required configuration for a Supervisor. The stores are
// passed separately to New.
//
// Example:
//
//	sup, _ := hirepg.New(candidates, checklists, checkpoints, hirepg.Config{
//	    Client:       &client,
//	    Model:        "claude-sonnet-4-5-20250929",
//	    SystemPrompt: "You are an HR screening supervisor",
//	})
type Config struct {
	// Client is the Anthropic API client (required unless a custom invoker
	// and summarizer are supplied via options)
	Client *anthropic.Client

	// Model is the model ID to use (required)
	Model string

	// SystemPrompt is the pinned system prompt for every thread (required)
	SystemPrompt string
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: Model is required", ErrInvalidConfig)
	}
	if c.SystemPrompt == "" {
		return fmt.Errorf("%w: SystemPrompt is required", ErrInvalidConfig)
	}
	return nil
}

// ConfigFromEnv builds a Config from the environment, loading a .env file
// first when one exists. Recognized variables: ANTHROPIC_API_KEY,
// HIREPG_MODEL, HIREPG_SYSTEM_PROMPT.
func ConfigFromEnv() (Config, error) {
	_ = godotenv.Load()

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return Config{}, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrInvalidConfig)
	}
	client := anthropic.NewClient()

	model := os.Getenv("HIREPG_MODEL")
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	cfg := Config{
		Client:       &client,
		Model:        model,
		SystemPrompt: os.Getenv("HIREPG_SYSTEM_PROMPT"),
	}
	return cfg, cfg.Validate()
}

// EnvInt reads an integer environment variable with a fallback.
func EnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// internalConfig holds the full supervisor configuration including optional
// parameters
type internalConfig struct {
	// Required from Config
	client       *anthropic.Client
	model        string
	systemPrompt string

	// Turn execution
	turnTimeout   time.Duration
	passThreshold float64

	// Compaction configuration
	tokenLimit      int     // Token budget before a compaction pass
	compactionRatio float64 // Fraction of post-system history to summarize
	summarizerModel string  // Model for summarization

	// Checkpoint rewrite configuration
	rewriteRetries int

	// Internal state
	invoker    AgentInvoker
	summarizer compaction.Summarizer
	hooks      *hooks.Registry
	logger     compaction.Logger
}

// newInternalConfig creates a new internal config from the public Config
func newInternalConfig(cfg Config) *internalConfig {
	return &internalConfig{
		client:       cfg.Client,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,

		// Defaults
		turnTimeout:   2 * time.Minute,
		passThreshold: 7.0,

		tokenLimit:      3000,
		compactionRatio: 0.5,
		summarizerModel: "claude-3-5-haiku-20241022",

		rewriteRetries: 3,

		hooks: hooks.NewRegistry(),
	}
}
