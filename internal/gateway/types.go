package gateway

import (
	"context"
	"time"
)

// ChannelKind distinguishes shared text channels from one-on-one channels.
// Menus accept reactions from any user in private channels, and games skip
// guess-message deletion there.
type ChannelKind int

const (
	ChannelKindText ChannelKind = iota
	ChannelKindPrivate
)

// Content is a platform-neutral message payload. Either Text or Embed is
// set; the handler layer decides how to present it.
type Content struct {
	Text  string
	Embed *Embed
}

// Embed is a rich message body.
type Embed struct {
	Title       string
	Description string
	Fields      []EmbedField
	Footer      string
	Timestamp   time.Time
}

// EmbedField is one labeled value inside an Embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Channel is the handle the core uses to talk back to the chat platform.
// Implementations live in the handler layer; the core never sees the
// gateway protocol.
type Channel interface {
	// ID identifies the channel on the chat platform
	ID() string

	// Kind reports whether this is a shared or private channel
	Kind() ChannelKind

	// Send publishes content and returns the new message's ID
	Send(ctx context.Context, content *Content) (string, error)

	// Edit replaces a previously sent message's content
	Edit(ctx context.Context, messageID string, content *Content) error

	// Delete removes a message
	Delete(ctx context.Context, messageID string) error

	// React adds one of the bot's reaction affordances to a message
	React(ctx context.Context, messageID, emoji string) error

	// RemoveReaction removes a single user's reaction
	RemoveReaction(ctx context.Context, messageID, emoji, userID string) error

	// RemoveAllReactions clears every reaction from a message
	RemoveAllReactions(ctx context.Context, messageID string) error
}

// MessageEvent is a chat message delivered to a subscriber.
type MessageEvent struct {
	ChannelID   string
	MessageID   string
	AuthorID    string
	AuthorName  string
	AuthorIsBot bool
	Content     string
}

// ReactionEvent is an emoji reaction delivered to a subscriber.
type ReactionEvent struct {
	ChannelID string
	MessageID string
	UserID    string
	UserIsBot bool
	Emoji     string
}
