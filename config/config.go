package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string `env:"DISCORD_TOKEN"`

	// Giveaway configuration
	JoinEmoji           string `env:"JOIN_EMOJI" envDefault:"🎉"`
	MaxWinners          int    `env:"MAX_WINNERS" envDefault:"50"`
	PhraseMatchMode     string `env:"PHRASE_MATCH_MODE" envDefault:"equals"`
	PhraseCaseSensitive bool   `env:"PHRASE_CASE_SENSITIVE" envDefault:"false"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// load reads configuration from a .env file (if present) and the environment
func load() (*Config, error) {
	// Missing .env is fine; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Environment != "test" && c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.PhraseMatchMode != "equals" && c.PhraseMatchMode != "contains" {
		return fmt.Errorf("PHRASE_MATCH_MODE must be \"equals\" or \"contains\", got %q", c.PhraseMatchMode)
	}
	if c.MaxWinners < 1 {
		return fmt.Errorf("MAX_WINNERS must be at least 1")
	}
	if c.JoinEmoji == "" {
		return fmt.Errorf("JOIN_EMOJI cannot be empty")
	}
	return nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		DiscordToken:    "test-token",
		JoinEmoji:       "🎉",
		MaxWinners:      50,
		PhraseMatchMode: "equals",
		Environment:     "test",
	}
}
