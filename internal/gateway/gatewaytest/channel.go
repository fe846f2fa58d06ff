// Package gatewaytest provides an in-memory Channel for exercising menus and
// game sessions without a chat platform.
package gatewaytest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jingles/moosic/internal/gateway"
)

// Message is one payload recorded by the fake channel.
type Message struct {
	ID      string
	Content *gateway.Content
}

// Channel records every call made against it. Safe for concurrent use.
type Channel struct {
	ChannelID   string
	ChannelKind gateway.ChannelKind

	// SendErr, when set, is returned by Send
	SendErr error

	mu         sync.Mutex
	nextID     int
	sent       []Message
	edits      []Message
	deleted    []string
	reactions  map[string][]string
	clearedAll []string
}

func NewChannel(id string) *Channel {
	return &Channel{
		ChannelID: id,
		reactions: make(map[string][]string),
	}
}

func (c *Channel) ID() string { return c.ChannelID }

func (c *Channel) Kind() gateway.ChannelKind { return c.ChannelKind }

func (c *Channel) Send(_ context.Context, content *gateway.Content) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SendErr != nil {
		return "", c.SendErr
	}
	c.nextID++
	id := fmt.Sprintf("msg-%d", c.nextID)
	c.sent = append(c.sent, Message{ID: id, Content: content})
	return id, nil
}

func (c *Channel) Edit(_ context.Context, messageID string, content *gateway.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edits = append(c.edits, Message{ID: messageID, Content: content})
	return nil
}

func (c *Channel) Delete(_ context.Context, messageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, messageID)
	return nil
}

func (c *Channel) React(_ context.Context, messageID, emoji string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reactions[messageID] = append(c.reactions[messageID], emoji)
	return nil
}

func (c *Channel) RemoveReaction(_ context.Context, _, _, _ string) error {
	return nil
}

func (c *Channel) RemoveAllReactions(_ context.Context, messageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearedAll = append(c.clearedAll, messageID)
	delete(c.reactions, messageID)
	return nil
}

// Sent returns a copy of every sent message in order.
func (c *Channel) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.sent...)
}

// SentTexts returns the plain-text bodies of every sent message.
func (c *Channel) SentTexts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	texts := make([]string, 0, len(c.sent))
	for _, m := range c.sent {
		texts = append(texts, m.Content.Text)
	}
	return texts
}

// Edits returns a copy of every edit in order.
func (c *Channel) Edits() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.edits...)
}

// Deleted returns the IDs of deleted messages.
func (c *Channel) Deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

// Reactions returns the bot reactions attached to a message.
func (c *Channel) Reactions(messageID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.reactions[messageID]...)
}

// ClearedAll returns message IDs whose reactions were removed wholesale.
func (c *Channel) ClearedAll() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.clearedAll...)
}
