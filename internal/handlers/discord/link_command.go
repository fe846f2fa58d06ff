package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/jingles/moosic/internal/services/sessions"
)

// LinkCommand handles the /link command
type LinkCommand struct {
	BaseCommand
	deps *Deps
}

// NewLinkCommand creates a new link command handler
func NewLinkCommand(deps *Deps) *LinkCommand {
	return &LinkCommand{
		BaseCommand: BaseCommand{
			Name:        "link",
			Description: "Link your Spotify account to the bot",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "refresh-token",
					Description: "The refresh token from the authorization flow",
					Required:    true,
				},
			},
		},
		deps: deps,
	}
}

// Handle processes a Discord interaction for the link command
func (c *LinkCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	userID, _ := interactionUser(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not work out who you are.")
	}

	options := commandOptions(i)
	token := options["refresh-token"].StringValue()

	if _, err := c.deps.Sessions.Link(ctx, &sessions.LinkInput{
		UserID:       userID,
		RefreshToken: token,
	}); err != nil {
		c.deps.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to link account")
		return RespondWithError(s, i, "Your account could not be linked. Check the token and try again.")
	}

	return RespondWithEphemeralMessage(s, i, "Your Spotify account is linked. You can play now!")
}

// UnlinkCommand handles the /unlink command
type UnlinkCommand struct {
	BaseCommand
	deps *Deps
}

// NewUnlinkCommand creates a new unlink command handler
func NewUnlinkCommand(deps *Deps) *UnlinkCommand {
	return &UnlinkCommand{
		BaseCommand: BaseCommand{
			Name:        "unlink",
			Description: "Remove your linked Spotify account",
		},
		deps: deps,
	}
}

// Handle processes a Discord interaction for the unlink command
func (c *UnlinkCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	userID, _ := interactionUser(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not work out who you are.")
	}

	if err := c.deps.Sessions.Unlink(ctx, userID); err != nil {
		if errors.Is(err, sessions.ErrNotLinked) {
			return RespondWithEphemeralMessage(s, i, "You have no linked account.")
		}
		c.deps.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to unlink account")
		return RespondWithError(s, i, "Your account could not be unlinked. Try again.")
	}

	return RespondWithEphemeralMessage(s, i, "Your Spotify account has been unlinked.")
}
