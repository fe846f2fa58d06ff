package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchMessageRoutesByChannel(t *testing.T) {
	d := NewDispatcher()

	var gotA, gotB []string
	subA := d.SubscribeMessages("channel-a", func(ev MessageEvent) {
		gotA = append(gotA, ev.Content)
	})
	defer subA.Cancel()
	subB := d.SubscribeMessages("channel-b", func(ev MessageEvent) {
		gotB = append(gotB, ev.Content)
	})
	defer subB.Cancel()

	d.DispatchMessage(MessageEvent{ChannelID: "channel-a", Content: "one"})
	d.DispatchMessage(MessageEvent{ChannelID: "channel-b", Content: "two"})
	d.DispatchMessage(MessageEvent{ChannelID: "channel-c", Content: "dropped"})

	assert.Equal(t, []string{"one"}, gotA)
	assert.Equal(t, []string{"two"}, gotB)
}

func TestCancelStopsDelivery(t *testing.T) {
	d := NewDispatcher()

	var count int
	sub := d.SubscribeMessages("channel", func(MessageEvent) { count++ })

	d.DispatchMessage(MessageEvent{ChannelID: "channel"})
	sub.Cancel()
	d.DispatchMessage(MessageEvent{ChannelID: "channel"})

	assert.Equal(t, 1, count)

	// Cancel is idempotent
	sub.Cancel()
}

func TestDispatchReactionRoutesByMessage(t *testing.T) {
	d := NewDispatcher()

	var got []string
	sub := d.SubscribeReactions("message-1", func(ev ReactionEvent) {
		got = append(got, ev.Emoji)
	})
	defer sub.Cancel()

	d.DispatchReaction(ReactionEvent{MessageID: "message-1", Emoji: "left"})
	d.DispatchReaction(ReactionEvent{MessageID: "message-2", Emoji: "right"})

	assert.Equal(t, []string{"left"}, got)
}

func TestMultipleSubscribersSameChannel(t *testing.T) {
	d := NewDispatcher()

	var first, second int
	s1 := d.SubscribeMessages("channel", func(MessageEvent) { first++ })
	s2 := d.SubscribeMessages("channel", func(MessageEvent) { second++ })
	defer s1.Cancel()
	defer s2.Cancel()

	d.DispatchMessage(MessageEvent{ChannelID: "channel"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
