package menu

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jingles/moosic/internal/gateway"
	"github.com/rs/zerolog"
)

// Define errors
var (
	ErrNilConfig     = errors.New("config cannot be nil")
	ErrNilChannel    = errors.New("channel cannot be nil")
	ErrNilDispatcher = errors.New("dispatcher cannot be nil")
	ErrNilPager      = errors.New("pager cannot be nil")
	ErrNilRenderer   = errors.New("renderer cannot be nil")
	ErrNoItems       = errors.New("selection menu requires at least one item")
	ErrTooManyItems  = errors.New("selection menu cannot exceed 10 items")
)

const (
	defaultTimeout = 90 * time.Second
	actionTimeout  = 10 * time.Second
)

// core owns the lifecycle shared by both menu variants: the published
// message, its reaction subscription, the expiry timer, and the event loop
// goroutine that serializes reaction handling per menu instance.
type core[T any] struct {
	log      zerolog.Logger
	channel  gateway.Channel
	dispatch *gateway.Dispatcher
	pager    Pager[T]
	ownerID  string
	timeout  time.Duration

	messageID string
	sub       gateway.Subscription
	expiry    *time.Timer

	events   chan gateway.ReactionEvent
	done     chan struct{}
	stopOnce sync.Once
}

func newCore[T any](channel gateway.Channel, dispatch *gateway.Dispatcher, pager Pager[T], ownerID string, timeout time.Duration, log zerolog.Logger) core[T] {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return core[T]{
		log:      log,
		channel:  channel,
		dispatch: dispatch,
		pager:    pager,
		ownerID:  ownerID,
		timeout:  timeout,
		events:   make(chan gateway.ReactionEvent, 8),
		done:     make(chan struct{}),
	}
}

// start publishes the first render, attaches the reaction affordances,
// subscribes to reaction events, and launches the event loop.
func (c *core[T]) start(ctx context.Context, content *gateway.Content, reactions []string, handle func(gateway.ReactionEvent)) (string, error) {
	messageID, err := c.channel.Send(ctx, content)
	if err != nil {
		return "", err
	}
	c.messageID = messageID

	for _, emoji := range reactions {
		if err := c.channel.React(ctx, messageID, emoji); err != nil {
			c.log.Warn().Err(err).Str("emoji", emoji).Msg("failed to attach menu reaction")
		}
	}

	c.sub = c.dispatch.SubscribeReactions(messageID, func(ev gateway.ReactionEvent) {
		select {
		case c.events <- ev:
		case <-c.done:
		}
	})
	c.expiry = time.NewTimer(c.timeout)

	go c.loop(handle)

	return messageID, nil
}

func (c *core[T]) loop(handle func(gateway.ReactionEvent)) {
	for {
		select {
		case <-c.done:
			return
		case <-c.expiry.C:
			c.stop()
			return
		case ev := <-c.events:
			if !c.accepts(ev) {
				continue
			}
			c.clearReaction(ev)
			handle(ev)
		}
	}
}

// accepts filters reaction input: the bot's own reactions are ignored, and
// in shared channels only the owning user may drive the menu. Private
// one-on-one channels accept anyone.
func (c *core[T]) accepts(ev gateway.ReactionEvent) bool {
	if ev.UserIsBot {
		return false
	}
	if c.channel.Kind() == gateway.ChannelKindPrivate {
		return true
	}
	return ev.UserID == c.ownerID
}

// clearReaction removes the user's reaction so the affordance can be pressed
// again. Not possible in private channels.
func (c *core[T]) clearReaction(ev gateway.ReactionEvent) {
	if c.channel.Kind() == gateway.ChannelKindPrivate {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()
	if err := c.channel.RemoveReaction(ctx, ev.MessageID, ev.Emoji, ev.UserID); err != nil {
		c.log.Debug().Err(err).Msg("failed to remove user reaction")
	}
}

// stop tears the menu down: the subscription is cancelled before the timer
// so no event can reach a dead menu, then reactions are cleared best-effort.
// Idempotent; timeout and explicit stop race and the loser is a no-op.
func (c *core[T]) stop() {
	c.stopOnce.Do(func() {
		if c.sub != nil {
			c.sub.Cancel()
		}
		close(c.done)
		if c.expiry != nil {
			c.expiry.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := c.channel.RemoveAllReactions(ctx, c.messageID); err != nil {
			c.log.Debug().Err(err).Msg("failed to clear menu reactions")
		}
	})
}

func (c *core[T]) edit(content *gateway.Content) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()
	if err := c.channel.Edit(ctx, c.messageID, content); err != nil {
		c.log.Warn().Err(err).Msg("failed to edit menu message")
	}
}
