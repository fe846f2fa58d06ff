package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/menu"
	"github.com/jingles/moosic/internal/services/sessions"
	"github.com/jingles/moosic/internal/spotify"
)

// PlaylistsCommand handles the /playlists command
type PlaylistsCommand struct {
	BaseCommand
	deps *Deps
}

// NewPlaylistsCommand creates a new playlists command handler
func NewPlaylistsCommand(deps *Deps) *PlaylistsCommand {
	return &PlaylistsCommand{
		BaseCommand: BaseCommand{
			Name:        "playlists",
			Description: "Browse your Spotify playlists",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Page through all of your playlists",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "tracks",
					Description: "Pick one of your playlists and browse its tracks",
				},
			},
		},
		deps: deps,
	}
}

// Handle processes a Discord interaction for the playlists command
func (c *PlaylistsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	userID, _ := interactionUser(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not work out who you are.")
	}

	session, err := c.deps.Sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotLinked) {
			return RespondWithError(s, i, "You need to link your Spotify account first. Use `/link`.")
		}
		c.deps.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to resolve session")
		return RespondWithError(s, i, "Something went wrong fetching your account. Try again.")
	}

	playlists, err := session.Playlists(ctx)
	if err != nil {
		c.deps.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to fetch playlists")
		return RespondWithError(s, i, "Your playlists could not be fetched.")
	}
	if len(playlists) == 0 {
		return RespondWithEphemeralMessage(s, i, "You have no playlists.")
	}

	channel, err := c.deps.ChannelFor(i.ChannelID)
	if err != nil {
		c.deps.Logger.Error().Err(err).Str("channel_id", i.ChannelID).Msg("failed to resolve channel")
		return RespondWithError(s, i, "Could not resolve this channel.")
	}

	data := i.ApplicationCommandData()
	subcommand := "list"
	if len(data.Options) > 0 {
		subcommand = data.Options[0].Name
	}

	ack := "Here you go!"
	switch subcommand {
	case "tracks":
		picker, truncated := capForSelection(playlists)
		if truncated {
			ack = fmt.Sprintf("You have more than %d playlists; showing the first %d.",
				menu.MaxSelectionItems, menu.MaxSelectionItems)
		}
		err = c.openPicker(ctx, channel, session, picker, userID)
	default:
		err = c.openList(ctx, channel, playlists, userID)
	}
	if err != nil {
		c.deps.Logger.Error().Err(err).Msg("failed to open playlist menu")
		return RespondWithError(s, i, "The menu could not be opened.")
	}

	return RespondWithEphemeralMessage(s, i, ack)
}

// capForSelection bounds the picker to the selection menu's item cap and
// reports whether anything was cut, so the caller can tell the user instead
// of truncating silently.
func capForSelection(playlists []spotify.Playlist) ([]spotify.Playlist, bool) {
	if len(playlists) <= menu.MaxSelectionItems {
		return playlists, false
	}
	return playlists[:menu.MaxSelectionItems], true
}

// openList publishes a paged menu over every playlist.
func (c *PlaylistsCommand) openList(ctx context.Context, channel gateway.Channel, playlists []spotify.Playlist, ownerID string) error {
	m, err := menu.NewPagedMenu(&menu.PagedConfig[spotify.Playlist]{
		Channel:    channel,
		Dispatcher: c.deps.Dispatcher,
		Pager:      menu.NewSlicePager(playlists, 5),
		Render:     renderPlaylistPage,
		OwnerID:    ownerID,
		Logger:     c.deps.Logger,
	})
	if err != nil {
		return err
	}
	_, err = m.Create(ctx)
	return err
}

// openPicker publishes a selection menu over the given playlists, already
// bounded by capForSelection; confirming one opens a paged menu of its
// tracks.
func (c *PlaylistsCommand) openPicker(ctx context.Context, channel gateway.Channel, session spotify.Session, playlists []spotify.Playlist, ownerID string) error {
	m, err := menu.NewSelectionMenu(&menu.SelectionConfig[spotify.Playlist]{
		Channel:    channel,
		Dispatcher: c.deps.Dispatcher,
		Items:      playlists,
		PageSize:   5,
		Render:     renderPlaylistSelection,
		AfterSelection: func(picked spotify.Playlist) *gateway.Content {
			go c.openTracks(channel, session, picked, ownerID)
			return &gateway.Content{
				Text: fmt.Sprintf("Selected **%s** (%d tracks).", picked.Name, picked.TrackCount),
			}
		},
		OwnerID: ownerID,
		Logger:  c.deps.Logger,
	})
	if err != nil {
		return err
	}
	_, err = m.Create(ctx)
	return err
}

// openTracks follows up a confirmed playlist with a paged menu of its tracks.
func (c *PlaylistsCommand) openTracks(channel gateway.Channel, session spotify.Session, playlist spotify.Playlist, ownerID string) {
	ctx := context.Background()

	tracks, err := session.PlaylistTracks(ctx, playlist.ID)
	if err != nil {
		c.deps.Logger.Error().Err(err).Str("playlist_id", playlist.ID).Msg("failed to fetch playlist tracks")
		return
	}
	if len(tracks) == 0 {
		return
	}

	m, err := menu.NewPagedMenu(&menu.PagedConfig[spotify.Track]{
		Channel:    channel,
		Dispatcher: c.deps.Dispatcher,
		Pager:      menu.NewSlicePager(tracks, 5),
		Render: func(items []spotify.Track, page int) *gateway.Content {
			return renderTrackPage(playlist.Name, items, page)
		},
		OwnerID: ownerID,
		Logger:  c.deps.Logger,
	})
	if err != nil {
		c.deps.Logger.Error().Err(err).Msg("failed to build track menu")
		return
	}
	if _, err := m.Create(ctx); err != nil {
		c.deps.Logger.Error().Err(err).Msg("failed to open track menu")
	}
}

func renderPlaylistPage(items []spotify.Playlist, page int) *gateway.Content {
	var b strings.Builder
	for _, playlist := range items {
		fmt.Fprintf(&b, "**%s** — %d tracks\n", playlist.Name, playlist.TrackCount)
	}

	return &gateway.Content{
		Embed: &gateway.Embed{
			Title:       "Your playlists",
			Description: b.String(),
			Footer:      fmt.Sprintf("Page %d", page+1),
		},
	}
}

func renderPlaylistSelection(items []spotify.Playlist, cursor int) *gateway.Content {
	var b strings.Builder
	for idx, playlist := range items {
		marker := "  "
		if idx+1 == cursor {
			marker = "▶ "
		}
		fmt.Fprintf(&b, "%s**%s** — %d tracks\n", marker, playlist.Name, playlist.TrackCount)
	}

	return &gateway.Content{
		Embed: &gateway.Embed{
			Title:       "Pick a playlist",
			Description: b.String(),
		},
	}
}

func renderTrackPage(playlistName string, items []spotify.Track, page int) *gateway.Content {
	var b strings.Builder
	for _, track := range items {
		fmt.Fprintf(&b, "**%s** — %s\n", track.Title, track.ArtistNames())
	}

	return &gateway.Content{
		Embed: &gateway.Embed{
			Title:       playlistName,
			Description: b.String(),
			Footer:      fmt.Sprintf("Page %d", page+1),
		},
	}
}
