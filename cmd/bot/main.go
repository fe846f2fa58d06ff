package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jingles/moosic/internal/common/clock"
	"github.com/jingles/moosic/internal/config"
	"github.com/jingles/moosic/internal/game"
	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/handlers/discord"
	"github.com/jingles/moosic/internal/logger"
	"github.com/jingles/moosic/internal/lyrics"
	"github.com/jingles/moosic/internal/repositories/account"
	"github.com/jingles/moosic/internal/services/sessions"
	"github.com/jingles/moosic/internal/spotify"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	var log zerolog.Logger
	if cfg.LogConsole {
		log = logger.NewConsole(cfg.LogLevel)
	} else {
		log = logger.New(cfg.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Redis backs the account-link repository
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	accountRepo, err := account.NewRedis(&account.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create account repository")
	}

	spotifyClient, err := spotify.NewClient(&spotify.ClientConfig{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		Logger:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Spotify client")
	}

	genius, err := lyrics.NewGenius(&lyrics.GeniusConfig{
		Token:  cfg.GeniusToken,
		Logger: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create lyrics provider")
	}

	systemClock := &clock.DefaultClock{}

	sessionStore, err := sessions.New(&sessions.Config{
		AccountRepo: accountRepo,
		Auth:        spotifyClient,
		Clock:       systemClock,
		Logger:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}

	dispatcher := gateway.NewDispatcher()
	registry := game.NewRegistry(log)

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Dispatcher:    dispatcher,
		Registry:      registry,
		Sessions:      sessionStore,
		Lyrics:        genius,
		Clock:         systemClock,
		Logger:        log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start bot")
	}

	// Wait for a termination signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("error closing redis client")
	}
}
