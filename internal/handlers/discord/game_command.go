package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jingles/moosic/internal/game"
	"github.com/jingles/moosic/internal/models"
	"github.com/jingles/moosic/internal/services/sessions"
	"github.com/jingles/moosic/internal/spotify"
)

var roundsMin = float64(1)

func roundsOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "rounds",
		Description: fmt.Sprintf("Number of rounds to play (1-%d)", game.MaxRounds),
		Required:    true,
		MinValue:    &roundsMin,
		MaxValue:    float64(game.MaxRounds),
	}
}

func playlistOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "playlist",
		Description: "Limit the game to one of your playlists (by name)",
	}
}

// SongGuessCommand handles the /song-guess command
type SongGuessCommand struct {
	BaseCommand
	deps *Deps
}

// NewSongGuessCommand creates a new song-guess command handler
func NewSongGuessCommand(deps *Deps) *SongGuessCommand {
	return &SongGuessCommand{
		BaseCommand: BaseCommand{
			Name:        "song-guess",
			Description: "Start a game of guessing the playing song",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "guess",
					Description: "What players have to guess",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "title", Value: string(game.GuessTitle)},
						{Name: "artist", Value: string(game.GuessArtist)},
					},
				},
				roundsOption(),
				playlistOption(),
			},
		},
		deps: deps,
	}
}

// Handle processes a Discord interaction for the song-guess command
func (c *SongGuessCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	options := commandOptions(i)

	owner, playlist, errMsg := resolveGameOwner(ctx, c.deps, i, options)
	if errMsg != "" {
		return RespondWithError(s, i, errMsg)
	}

	rules, err := game.NewSongGuess(&game.SongGuessConfig{
		Owner:    owner,
		Type:     game.GuessType(options["guess"].StringValue()),
		Playlist: playlist,
		Random:   c.deps.Random,
		Logger:   c.deps.Logger,
	})
	if err != nil {
		return RespondWithError(s, i, err.Error())
	}

	return createGame(ctx, c.deps, s, i, rules, owner, int(options["rounds"].IntValue()))
}

// LyricGuessCommand handles the /lyric-guess command
type LyricGuessCommand struct {
	BaseCommand
	deps *Deps
}

// NewLyricGuessCommand creates a new lyric-guess command handler
func NewLyricGuessCommand(deps *Deps) *LyricGuessCommand {
	return &LyricGuessCommand{
		BaseCommand: BaseCommand{
			Name:        "lyric-guess",
			Description: "Start a game of completing the blanked-out lyric",
			Options: []*discordgo.ApplicationCommandOption{
				roundsOption(),
				playlistOption(),
			},
		},
		deps: deps,
	}
}

// Handle processes a Discord interaction for the lyric-guess command
func (c *LyricGuessCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	options := commandOptions(i)

	owner, playlist, errMsg := resolveGameOwner(ctx, c.deps, i, options)
	if errMsg != "" {
		return RespondWithError(s, i, errMsg)
	}

	rules, err := game.NewLyricGuess(&game.LyricGuessConfig{
		Owner:    owner,
		Playlist: playlist,
		Provider: c.deps.Lyrics,
		Random:   c.deps.Random,
		Logger:   c.deps.Logger,
	})
	if err != nil {
		return RespondWithError(s, i, err.Error())
	}

	return createGame(ctx, c.deps, s, i, rules, owner, int(options["rounds"].IntValue()))
}

// resolveGameOwner turns the invoking user into a Player with a live music
// session, plus the optional playlist restriction. A non-empty message means
// the command cannot proceed and explains why.
func resolveGameOwner(
	ctx context.Context,
	deps *Deps,
	i *discordgo.InteractionCreate,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) (*models.Player, *spotify.Playlist, string) {
	userID, username := interactionUser(i)
	if userID == "" {
		return nil, nil, "Could not work out who you are."
	}

	session, err := deps.Sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotLinked) {
			return nil, nil, "You need to link your Spotify account first. Use `/link`."
		}
		deps.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to resolve session")
		return nil, nil, "Something went wrong fetching your account. Try again."
	}

	owner := &models.Player{ID: userID, Name: username, Session: session}

	var playlist *spotify.Playlist
	if opt, ok := options["playlist"]; ok {
		playlist, err = findPlaylist(ctx, session, opt.StringValue())
		if err != nil {
			return nil, nil, fmt.Sprintf("No playlist matching %q was found.", opt.StringValue())
		}
	}

	return owner, playlist, ""
}

// findPlaylist matches a name against the user's playlists, preferring an
// exact match over a prefix match. Case-insensitive.
func findPlaylist(ctx context.Context, session spotify.Session, name string) (*spotify.Playlist, error) {
	playlists, err := session.Playlists(ctx)
	if err != nil {
		return nil, err
	}

	wanted := strings.ToLower(strings.TrimSpace(name))
	var prefix *spotify.Playlist

	for idx := range playlists {
		candidate := strings.ToLower(playlists[idx].Name)
		if candidate == wanted {
			return &playlists[idx], nil
		}
		if prefix == nil && strings.HasPrefix(candidate, wanted) {
			prefix = &playlists[idx]
		}
	}
	if prefix != nil {
		return prefix, nil
	}
	return nil, fmt.Errorf("no playlist named %q", name)
}

// createGame registers a session with the game registry and acknowledges
// the interaction. The lobby announcement itself comes from the session.
func createGame(
	ctx context.Context,
	deps *Deps,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	rules game.Rules,
	owner *models.Player,
	rounds int,
) error {
	channel, err := deps.ChannelFor(i.ChannelID)
	if err != nil {
		deps.Logger.Error().Err(err).Str("channel_id", i.ChannelID).Msg("failed to resolve channel")
		return RespondWithError(s, i, "Could not resolve this channel.")
	}

	_, err = deps.Registry.Create(ctx, &game.Config{
		Channel:    channel,
		Dispatcher: deps.Dispatcher,
		Sessions:   deps.Sessions,
		Clock:      deps.Clock,
		Rules:      rules,
		Rounds:     rounds,
		Owner:      owner,
		Logger:     deps.Logger,
	})
	if err != nil {
		switch {
		case errors.Is(err, game.ErrGameInChannel):
			return RespondWithError(s, i, "There is already a game running in this channel.")
		case errors.Is(err, game.ErrPlayerInGame):
			return RespondWithError(s, i, "You are already playing a game in another channel.")
		default:
			deps.Logger.Error().Err(err).Msg("failed to create game")
			return RespondWithError(s, i, "The game could not be created.")
		}
	}

	return RespondWithEphemeralMessage(s, i, "Game created! Waiting for players to join.")
}
