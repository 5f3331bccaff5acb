package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid test config",
			mutate: func(c *Config) {},
		},
		{
			name: "missing token outside test",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.DiscordToken = ""
			},
			wantErr: "DISCORD_TOKEN",
		},
		{
			name: "missing token allowed in test env",
			mutate: func(c *Config) {
				c.DiscordToken = ""
			},
		},
		{
			name: "unknown phrase match mode",
			mutate: func(c *Config) {
				c.PhraseMatchMode = "fuzzy"
			},
			wantErr: "PHRASE_MATCH_MODE",
		},
		{
			name: "contains mode accepted",
			mutate: func(c *Config) {
				c.PhraseMatchMode = "contains"
			},
		},
		{
			name: "zero max winners",
			mutate: func(c *Config) {
				c.MaxWinners = 0
			},
			wantErr: "MAX_WINNERS",
		},
		{
			name: "empty join emoji",
			mutate: func(c *Config) {
				c.JoinEmoji = ""
			},
			wantErr: "JOIN_EMOJI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()

	custom := NewTestConfig()
	custom.MaxWinners = 5
	SetTestConfig(custom)

	assert.Equal(t, 5, Get().MaxWinners)
}

func TestGetFallsBackToTestConfig(t *testing.T) {
	defer ResetConfig()
	ResetConfig()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DISCORD_TOKEN", "")

	cfg := Get()
	require.NotNil(t, cfg)
	assert.Equal(t, "equals", cfg.PhraseMatchMode)
}
