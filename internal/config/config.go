package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings for the bot.
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`

	GeniusToken string `env:"GENIUS_TOKEN"`

	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogConsole bool   `env:"LOG_CONSOLE" envDefault:"false"`
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that every required setting is present.
func (c *Config) Validate() error {
	for _, req := range []struct {
		name  string
		value string
	}{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "SPOTIFY_CLIENT_ID", value: c.SpotifyClientID},
		{name: "SPOTIFY_CLIENT_SECRET", value: c.SpotifyClientSecret},
		{name: "GENIUS_TOKEN", value: c.GeniusToken},
	} {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	return nil
}
