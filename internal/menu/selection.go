package menu

import (
	"context"
	"time"

	"github.com/jingles/moosic/internal/gateway"
	"github.com/rs/zerolog"
)

// MaxSelectionItems is the hard cap on selectable items. Construction above
// it is a configuration error, never a silent truncation.
const MaxSelectionItems = 10

// SelectionRenderer turns the current page and 1-based cursor position into
// message content.
type SelectionRenderer[T any] func(items []T, cursor int) *gateway.Content

// AfterSelection produces the content shown in place of the list once an
// item is confirmed.
type AfterSelection[T any] func(item T) *gateway.Content

// SelectionConfig holds dependencies for a SelectionMenu.
type SelectionConfig[T any] struct {
	Channel    gateway.Channel
	Dispatcher *gateway.Dispatcher

	// Items is the bounded selectable set, at most MaxSelectionItems
	Items []T

	// PageSize defaults to 5
	PageSize int

	Render SelectionRenderer[T]

	// AfterSelection is invoked with the confirmed item
	AfterSelection AfterSelection[T]

	OwnerID string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// SelectionMenu is a paged menu with a movable cursor and a confirm action.
// Up/down move the cursor, wrapping to the adjacent page at either boundary;
// confirm finalizes the highlighted item.
type SelectionMenu[T any] struct {
	core   core[T]
	render SelectionRenderer[T]
	after  AfterSelection[T]
	cursor int // 1-based within the current page
}

// NewSelectionMenu validates the config, including the item cap.
func NewSelectionMenu[T any](cfg *SelectionConfig[T]) (*SelectionMenu[T], error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Channel == nil {
		return nil, ErrNilChannel
	}
	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if cfg.Render == nil || cfg.AfterSelection == nil {
		return nil, ErrNilRenderer
	}
	if len(cfg.Items) == 0 {
		return nil, ErrNoItems
	}
	if len(cfg.Items) > MaxSelectionItems {
		return nil, ErrTooManyItems
	}

	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = 5
	}

	log := cfg.Logger.With().Str("component", "selection_menu").Logger()
	return &SelectionMenu[T]{
		core:   newCore[T](cfg.Channel, cfg.Dispatcher, NewSlicePager(cfg.Items, pageSize), cfg.OwnerID, cfg.Timeout, log),
		render: cfg.Render,
		after:  cfg.AfterSelection,
		cursor: 1,
	}, nil
}

// Create publishes the menu with the cursor on the first item.
func (m *SelectionMenu[T]) Create(ctx context.Context) (string, error) {
	content := m.render(m.core.pager.Current(), m.cursor)
	reactions := []string{ReactUp, ReactDown, ReactConfirm, ReactStop}
	return m.core.start(ctx, content, reactions, m.handle)
}

// Stop ends the menu early.
func (m *SelectionMenu[T]) Stop() {
	m.core.stop()
}

// Done is closed once the menu has been torn down.
func (m *SelectionMenu[T]) Done() <-chan struct{} {
	return m.core.done
}

func (m *SelectionMenu[T]) handle(ev gateway.ReactionEvent) {
	switch ev.Emoji {
	case ReactUp:
		m.move(-1)
	case ReactDown:
		m.move(1)
	case ReactConfirm:
		m.confirm()
	case ReactStop:
		m.core.stop()
	}
}

// move shifts the cursor, crossing to the adjacent page when it would leave
// the current one. The cursor lands on the opposite end of the new page. At
// the ends of the list the cursor stays put.
func (m *SelectionMenu[T]) move(direction int) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	items := m.core.pager.Current()
	next := m.cursor + direction

	switch {
	case next < 1:
		newItems, moved, err := m.core.pager.Previous(ctx)
		if err != nil {
			m.core.log.Warn().Err(err).Msg("failed to fetch previous page")
			moved = false
		}
		if moved {
			items = newItems
			m.cursor = len(items)
		}
	case next > len(items):
		newItems, moved, err := m.core.pager.Next(ctx)
		if err != nil {
			m.core.log.Warn().Err(err).Msg("failed to fetch next page")
			moved = false
		}
		if moved {
			items = newItems
			m.cursor = 1
		}
	default:
		m.cursor = next
	}

	m.core.edit(m.render(items, m.cursor))
}

// confirm finalizes the highlighted item: the menu stops and the message is
// replaced with the afterSelection content.
func (m *SelectionMenu[T]) confirm() {
	items := m.core.pager.Current()
	if m.cursor < 1 || m.cursor > len(items) {
		return
	}

	content := m.after(items[m.cursor-1])
	m.core.stop()
	m.core.edit(content)
}
