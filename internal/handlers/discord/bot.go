package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/jingles/moosic/internal/common/clock"
	"github.com/jingles/moosic/internal/game"
	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/lyrics"
	"github.com/jingles/moosic/internal/random"
	"github.com/jingles/moosic/internal/services/sessions"
	"github.com/rs/zerolog"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	deps       *Deps
	log        zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Dispatcher receives every message and reaction event
	Dispatcher *gateway.Dispatcher

	// Registry owns the running games
	Registry *game.Registry

	// Sessions resolves users to their linked music sessions
	Sessions sessions.Service

	// Lyrics backs the lyric-guessing game
	Lyrics lyrics.Provider

	// Clock measures guess times
	Clock clock.Clock

	Logger zerolog.Logger
}

// Deps bundles what the command handlers need to create games and menus.
type Deps struct {
	Dispatcher *gateway.Dispatcher
	Registry   *game.Registry
	Sessions   sessions.Service
	Lyrics     lyrics.Provider
	Clock      clock.Clock
	Random     *random.Source

	// ChannelFor adapts a Discord channel ID to a gateway.Channel
	ChannelFor func(channelID string) (gateway.Channel, error)

	Logger zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}
	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if cfg.Lyrics == nil {
		return nil, errors.New("lyrics provider cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// The games read message content and menus read reactions
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsDirectMessageReactions |
		discordgo.IntentMessageContent

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		log:        cfg.Logger.With().Str("component", "discord_bot").Logger(),
	}
	bot.deps = &Deps{
		Dispatcher: cfg.Dispatcher,
		Registry:   cfg.Registry,
		Sessions:   cfg.Sessions,
		Lyrics:     cfg.Lyrics,
		Clock:      cfg.Clock,
		Random:     random.New(nil),
		ChannelFor: bot.channelFor,
		Logger:     cfg.Logger,
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessageCreate)
	session.AddHandler(bot.handleReactionAdd)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewSongGuessCommand(b.deps),
		NewLyricGuessCommand(b.deps),
		NewPlaylistsCommand(b.deps),
		NewLinkCommand(b.deps),
		NewUnlinkCommand(b.deps),
	}
	for _, handler := range handlers {
		if err := b.RegisterCommand(handler); err != nil {
			return fmt.Errorf("failed to register %s command: %w", handler.GetName(), err)
		}
	}

	b.log.Info().Msg("bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn().Err(err).Str("command", cmdName).Msg("failed to delete command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info().Str("command", cmd.GetName()).Str("id", createdCmd.ID).Msg("registered command")

	return nil
}

// channelFor adapts a Discord channel to the gateway interface, resolving
// whether it is a DM so games and menus can relax their ownership rules.
func (b *Bot) channelFor(channelID string) (gateway.Channel, error) {
	kind := gateway.ChannelKindText

	ch, err := b.session.State.Channel(channelID)
	if err != nil {
		ch, err = b.session.Channel(channelID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve channel %s: %w", channelID, err)
	}
	if ch.Type == discordgo.ChannelTypeDM || ch.Type == discordgo.ChannelTypeGroupDM {
		kind = gateway.ChannelKindPrivate
	}

	return &channel{session: b.session, id: channelID, kind: kind}, nil
}

// handleInteraction routes slash commands to their handlers
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	if handler, ok := b.commands[name]; ok {
		if err := handler.Handle(s, i); err != nil {
			b.log.Error().Err(err).Str("command", name).Msg("command failed")
		}
	}
}

// handleMessageCreate forwards chat messages into the dispatcher
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	name := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		name = m.Member.Nick
	}

	b.config.Dispatcher.DispatchMessage(gateway.MessageEvent{
		ChannelID:   m.ChannelID,
		MessageID:   m.ID,
		AuthorID:    m.Author.ID,
		AuthorName:  name,
		AuthorIsBot: m.Author.Bot || m.Author.ID == s.State.User.ID,
		Content:     m.Content,
	})
}

// handleReactionAdd forwards reactions into the dispatcher
func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	isBot := r.UserID == s.State.User.ID
	if r.Member != nil && r.Member.User != nil {
		isBot = isBot || r.Member.User.Bot
	}

	b.config.Dispatcher.DispatchReaction(gateway.ReactionEvent{
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		UserIsBot: isBot,
		Emoji:     r.Emoji.Name,
	})
}
