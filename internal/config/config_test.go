package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "discord-token")
	t.Setenv("SPOTIFY_CLIENT_ID", "spotify-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "spotify-secret")
	t.Setenv("GENIUS_TOKEN", "genius-token")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogConsole)
}

func TestValidateMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing discord token",
			mutate:  func(c *Config) { c.DiscordToken = "" },
			wantErr: "DISCORD_TOKEN is required",
		},
		{
			name:    "missing spotify client id",
			mutate:  func(c *Config) { c.SpotifyClientID = "" },
			wantErr: "SPOTIFY_CLIENT_ID is required",
		},
		{
			name:    "missing genius token",
			mutate:  func(c *Config) { c.GeniusToken = "" },
			wantErr: "GENIUS_TOKEN is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DiscordToken:        "a",
				SpotifyClientID:     "b",
				SpotifyClientSecret: "c",
				GeniusToken:         "d",
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
