package menu

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/gateway/gatewaytest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func pagedRender(items []string, page int) *gateway.Content {
	return &gateway.Content{Text: fmt.Sprintf("page=%d items=%v", page, items)}
}

func selectionRender(items []string, cursor int) *gateway.Content {
	return &gateway.Content{Text: fmt.Sprintf("cursor=%d items=%v", cursor, items)}
}

func newPaged(t *testing.T, items []string, pageSize int) (*PagedMenu[string], *gatewaytest.Channel, *gateway.Dispatcher, string) {
	t.Helper()

	channel := gatewaytest.NewChannel("channel-1")
	dispatcher := gateway.NewDispatcher()

	m, err := NewPagedMenu(&PagedConfig[string]{
		Channel:    channel,
		Dispatcher: dispatcher,
		Pager:      NewSlicePager(items, pageSize),
		Render:     pagedRender,
		OwnerID:    "owner",
		Timeout:    time.Minute,
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)

	messageID, err := m.Create(context.Background())
	require.NoError(t, err)
	t.Cleanup(m.Stop)

	return m, channel, dispatcher, messageID
}

func react(d *gateway.Dispatcher, messageID, userID, emoji string) {
	d.DispatchReaction(gateway.ReactionEvent{
		ChannelID: "channel-1",
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
	})
}

func waitEdits(t *testing.T, channel *gatewaytest.Channel, n int) []gatewaytest.Message {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(channel.Edits()) >= n
	}, waitFor, 5*time.Millisecond)
	return channel.Edits()
}

func TestPagedMenuCreateAttachesReactions(t *testing.T) {
	_, channel, _, messageID := newPaged(t, []string{"a", "b", "c"}, 2)

	sent := channel.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "page=0 items=[a b]", sent[0].Content.Text)
	assert.Equal(t, []string{ReactLeft, ReactStop, ReactRight}, channel.Reactions(messageID))
}

func TestPagedMenuNextAndPrevious(t *testing.T) {
	_, channel, dispatcher, messageID := newPaged(t, []string{"a", "b", "c", "d"}, 2)

	react(dispatcher, messageID, "owner", ReactRight)
	edits := waitEdits(t, channel, 1)
	assert.Equal(t, "page=1 items=[c d]", edits[0].Content.Text)

	react(dispatcher, messageID, "owner", ReactLeft)
	edits = waitEdits(t, channel, 2)
	assert.Equal(t, "page=0 items=[a b]", edits[1].Content.Text)
}

func TestPagedMenuPreviousOnFirstPageStays(t *testing.T) {
	_, channel, dispatcher, messageID := newPaged(t, []string{"a", "b", "c", "d"}, 2)

	react(dispatcher, messageID, "owner", ReactLeft)
	edits := waitEdits(t, channel, 1)
	assert.Equal(t, "page=0 items=[a b]", edits[0].Content.Text)
}

func TestPagedMenuIgnoresForeignUsers(t *testing.T) {
	_, channel, dispatcher, messageID := newPaged(t, []string{"a", "b", "c", "d"}, 2)

	react(dispatcher, messageID, "intruder", ReactRight)
	react(dispatcher, messageID, "owner", ReactRight)

	edits := waitEdits(t, channel, 1)
	require.Len(t, edits, 1)
	assert.Equal(t, "page=1 items=[c d]", edits[0].Content.Text)
}

func TestPagedMenuIgnoresUnknownReaction(t *testing.T) {
	_, channel, dispatcher, messageID := newPaged(t, []string{"a", "b", "c", "d"}, 2)

	react(dispatcher, messageID, "owner", "🎸")
	react(dispatcher, messageID, "owner", ReactRight)

	edits := waitEdits(t, channel, 1)
	require.Len(t, edits, 1)
	assert.Equal(t, "page=1 items=[c d]", edits[0].Content.Text)
}

func TestPagedMenuStopReactionClearsReactions(t *testing.T) {
	m, channel, dispatcher, messageID := newPaged(t, []string{"a", "b"}, 2)

	react(dispatcher, messageID, "owner", ReactStop)

	select {
	case <-m.Done():
	case <-time.After(waitFor):
		t.Fatal("menu did not stop")
	}
	assert.Contains(t, channel.ClearedAll(), messageID)
}

func TestPagedMenuExpires(t *testing.T) {
	channel := gatewaytest.NewChannel("channel-1")
	dispatcher := gateway.NewDispatcher()

	m, err := NewPagedMenu(&PagedConfig[string]{
		Channel:    channel,
		Dispatcher: dispatcher,
		Pager:      NewSlicePager([]string{"a"}, 2),
		Render:     pagedRender,
		OwnerID:    "owner",
		Timeout:    30 * time.Millisecond,
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)

	messageID, err := m.Create(context.Background())
	require.NoError(t, err)

	select {
	case <-m.Done():
	case <-time.After(waitFor):
		t.Fatal("menu did not expire")
	}
	assert.Contains(t, channel.ClearedAll(), messageID)
}

func newSelection(t *testing.T, items []string, pageSize int) (*SelectionMenu[string], *gatewaytest.Channel, *gateway.Dispatcher, string) {
	t.Helper()

	channel := gatewaytest.NewChannel("channel-1")
	dispatcher := gateway.NewDispatcher()

	m, err := NewSelectionMenu(&SelectionConfig[string]{
		Channel:    channel,
		Dispatcher: dispatcher,
		Items:      items,
		PageSize:   pageSize,
		Render:     selectionRender,
		AfterSelection: func(item string) *gateway.Content {
			return &gateway.Content{Text: "selected " + item}
		},
		OwnerID: "owner",
		Timeout: time.Minute,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	messageID, err := m.Create(context.Background())
	require.NoError(t, err)
	t.Cleanup(m.Stop)

	return m, channel, dispatcher, messageID
}

func TestSelectionMenuItemCap(t *testing.T) {
	channel := gatewaytest.NewChannel("channel-1")
	dispatcher := gateway.NewDispatcher()

	items := make([]string, 11)
	_, err := NewSelectionMenu(&SelectionConfig[string]{
		Channel:        channel,
		Dispatcher:     dispatcher,
		Items:          items,
		Render:         selectionRender,
		AfterSelection: func(string) *gateway.Content { return &gateway.Content{} },
		Logger:         zerolog.Nop(),
	})
	require.ErrorIs(t, err, ErrTooManyItems)

	m, err := NewSelectionMenu(&SelectionConfig[string]{
		Channel:        channel,
		Dispatcher:     dispatcher,
		Items:          items[:10],
		Render:         selectionRender,
		AfterSelection: func(string) *gateway.Content { return &gateway.Content{} },
		Logger:         zerolog.Nop(),
	})
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestSelectionMenuCursorMovesWithinPage(t *testing.T) {
	_, channel, dispatcher, messageID := newSelection(t, []string{"a", "b", "c"}, 5)

	react(dispatcher, messageID, "owner", ReactDown)
	edits := waitEdits(t, channel, 1)
	assert.Equal(t, "cursor=2 items=[a b c]", edits[0].Content.Text)

	react(dispatcher, messageID, "owner", ReactUp)
	edits = waitEdits(t, channel, 2)
	assert.Equal(t, "cursor=1 items=[a b c]", edits[1].Content.Text)
}

func TestSelectionMenuCursorWrapsAcrossPages(t *testing.T) {
	// Seven items over two pages: [a b c d e] and [f g]
	_, channel, dispatcher, messageID := newSelection(t, []string{"a", "b", "c", "d", "e", "f", "g"}, 5)

	// Walk the cursor off the end of page zero
	for i := 0; i < 5; i++ {
		react(dispatcher, messageID, "owner", ReactDown)
	}
	edits := waitEdits(t, channel, 5)
	assert.Equal(t, "cursor=1 items=[f g]", edits[4].Content.Text)

	// Moving up from the top of page one lands on the bottom of page zero
	react(dispatcher, messageID, "owner", ReactUp)
	edits = waitEdits(t, channel, 6)
	assert.Equal(t, "cursor=5 items=[a b c d e]", edits[5].Content.Text)
}

func TestSelectionMenuCursorStaysAtListEnds(t *testing.T) {
	_, channel, dispatcher, messageID := newSelection(t, []string{"a", "b"}, 5)

	react(dispatcher, messageID, "owner", ReactUp)
	edits := waitEdits(t, channel, 1)
	assert.Equal(t, "cursor=1 items=[a b]", edits[0].Content.Text)
}

func TestSelectionMenuConfirm(t *testing.T) {
	m, channel, dispatcher, messageID := newSelection(t, []string{"a", "b", "c"}, 5)

	react(dispatcher, messageID, "owner", ReactDown)
	waitEdits(t, channel, 1)

	react(dispatcher, messageID, "owner", ReactConfirm)

	select {
	case <-m.Done():
	case <-time.After(waitFor):
		t.Fatal("menu did not stop after confirmation")
	}

	edits := waitEdits(t, channel, 2)
	assert.Equal(t, "selected b", edits[len(edits)-1].Content.Text)
	assert.Contains(t, channel.ClearedAll(), messageID)
}

func TestSelectionMenuPrivateChannelAcceptsAnyUser(t *testing.T) {
	channel := gatewaytest.NewChannel("dm-1")
	channel.ChannelKind = gateway.ChannelKindPrivate
	dispatcher := gateway.NewDispatcher()

	m, err := NewSelectionMenu(&SelectionConfig[string]{
		Channel:    channel,
		Dispatcher: dispatcher,
		Items:      []string{"a", "b"},
		PageSize:   5,
		Render:     selectionRender,
		AfterSelection: func(item string) *gateway.Content {
			return &gateway.Content{Text: "selected " + item}
		},
		OwnerID: "owner",
		Timeout: time.Minute,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	messageID, err := m.Create(context.Background())
	require.NoError(t, err)
	t.Cleanup(m.Stop)

	d := dispatcher
	d.DispatchReaction(gateway.ReactionEvent{
		ChannelID: "dm-1", MessageID: messageID, UserID: "someone-else", Emoji: ReactDown,
	})

	edits := waitEdits(t, channel, 1)
	assert.Equal(t, "cursor=2 items=[a b]", edits[0].Content.Text)
}
