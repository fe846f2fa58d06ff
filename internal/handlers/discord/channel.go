package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/jingles/moosic/internal/gateway"
)

// channel adapts one Discord channel to the gateway.Channel interface the
// core packages talk to.
type channel struct {
	session *discordgo.Session
	id      string
	kind    gateway.ChannelKind
}

func (c *channel) ID() string {
	return c.id
}

func (c *channel) Kind() gateway.ChannelKind {
	return c.kind
}

func (c *channel) Send(_ context.Context, content *gateway.Content) (string, error) {
	msg, err := c.session.ChannelMessageSendComplex(c.id, renderSend(content))
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	return msg.ID, nil
}

func (c *channel) Edit(_ context.Context, messageID string, content *gateway.Content) error {
	if _, err := c.session.ChannelMessageEditComplex(renderEdit(c.id, messageID, content)); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (c *channel) Delete(_ context.Context, messageID string) error {
	if err := c.session.ChannelMessageDelete(c.id, messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (c *channel) React(_ context.Context, messageID, emoji string) error {
	if err := c.session.MessageReactionAdd(c.id, messageID, emoji); err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}

func (c *channel) RemoveReaction(_ context.Context, messageID, emoji, userID string) error {
	if err := c.session.MessageReactionRemove(c.id, messageID, emoji, userID); err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}

func (c *channel) RemoveAllReactions(_ context.Context, messageID string) error {
	if err := c.session.MessageReactionsRemoveAll(c.id, messageID); err != nil {
		return fmt.Errorf("failed to clear reactions: %w", err)
	}
	return nil
}
