package gateway

import "sync"

// MessageHandler receives chat messages for one channel subscription.
type MessageHandler func(MessageEvent)

// ReactionHandler receives reaction events for one message subscription.
type ReactionHandler func(ReactionEvent)

// Subscription is an opaque handle a subscriber cancels on teardown.
// Cancel is idempotent; after it returns, no further events are delivered.
type Subscription interface {
	Cancel()
}

// Dispatcher routes gateway events to live menus and game sessions. It
// replaces the source design's global event bus with explicit per-channel
// message registries and per-message reaction registries.
type Dispatcher struct {
	mu          sync.Mutex
	nextID      int64
	messageSubs map[string]map[int64]MessageHandler  // channel ID -> subs
	reactionSub map[string]map[int64]ReactionHandler // message ID -> subs
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		messageSubs: make(map[string]map[int64]MessageHandler),
		reactionSub: make(map[string]map[int64]ReactionHandler),
	}
}

// SubscribeMessages registers a handler for all messages in a channel.
func (d *Dispatcher) SubscribeMessages(channelID string, h MessageHandler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	if d.messageSubs[channelID] == nil {
		d.messageSubs[channelID] = make(map[int64]MessageHandler)
	}
	d.messageSubs[channelID][id] = h

	return &subscription{cancel: func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.messageSubs[channelID], id)
		if len(d.messageSubs[channelID]) == 0 {
			delete(d.messageSubs, channelID)
		}
	}}
}

// SubscribeReactions registers a handler for reactions on one message.
func (d *Dispatcher) SubscribeReactions(messageID string, h ReactionHandler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	if d.reactionSub[messageID] == nil {
		d.reactionSub[messageID] = make(map[int64]ReactionHandler)
	}
	d.reactionSub[messageID][id] = h

	return &subscription{cancel: func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.reactionSub[messageID], id)
		if len(d.reactionSub[messageID]) == 0 {
			delete(d.reactionSub, messageID)
		}
	}}
}

// DispatchMessage delivers a message event to the channel's subscribers.
// Handlers run synchronously; delivery order across subscribers is not
// guaranteed, and each subscriber serializes its own processing.
func (d *Dispatcher) DispatchMessage(ev MessageEvent) {
	d.mu.Lock()
	handlers := make([]MessageHandler, 0, len(d.messageSubs[ev.ChannelID]))
	for _, h := range d.messageSubs[ev.ChannelID] {
		handlers = append(handlers, h)
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// DispatchReaction delivers a reaction event to the message's subscribers.
func (d *Dispatcher) DispatchReaction(ev ReactionEvent) {
	d.mu.Lock()
	handlers := make([]ReactionHandler, 0, len(d.reactionSub[ev.MessageID]))
	for _, h := range d.reactionSub[ev.MessageID] {
		handlers = append(handlers, h)
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Cancel() {
	s.once.Do(s.cancel)
}
