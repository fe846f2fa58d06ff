package menu

import (
	"context"
	"time"

	"github.com/jingles/moosic/internal/gateway"
	"github.com/rs/zerolog"
)

// Renderer turns the current page into message content.
type Renderer[T any] func(items []T, page int) *gateway.Content

// PagedConfig holds dependencies for a PagedMenu.
type PagedConfig[T any] struct {
	Channel    gateway.Channel
	Dispatcher *gateway.Dispatcher
	Pager      Pager[T]
	Render     Renderer[T]

	// OwnerID is the only user whose reactions drive the menu in shared
	// channels
	OwnerID string

	// Timeout is how long the menu stays alive without input; defaults to
	// 90 seconds
	Timeout time.Duration

	Logger zerolog.Logger
}

// PagedMenu is a reaction-controlled message that browses pages of a list.
// Left/right page through it, stop ends it, anything else is ignored.
type PagedMenu[T any] struct {
	core   core[T]
	render Renderer[T]
}

// NewPagedMenu validates the config and builds a menu. Create must be
// called to publish it.
func NewPagedMenu[T any](cfg *PagedConfig[T]) (*PagedMenu[T], error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Channel == nil {
		return nil, ErrNilChannel
	}
	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if cfg.Pager == nil {
		return nil, ErrNilPager
	}
	if cfg.Render == nil {
		return nil, ErrNilRenderer
	}

	log := cfg.Logger.With().Str("component", "paged_menu").Logger()
	return &PagedMenu[T]{
		core:   newCore(cfg.Channel, cfg.Dispatcher, cfg.Pager, cfg.OwnerID, cfg.Timeout, log),
		render: cfg.Render,
	}, nil
}

// Create renders page zero, publishes the message, and starts listening for
// reactions. It returns the published message ID.
func (m *PagedMenu[T]) Create(ctx context.Context) (string, error) {
	content := m.render(m.core.pager.Current(), m.core.pager.Page())
	reactions := []string{ReactLeft, ReactStop, ReactRight}
	return m.core.start(ctx, content, reactions, m.handle)
}

// Stop ends the menu early. Safe to call at any time, from any goroutine.
func (m *PagedMenu[T]) Stop() {
	m.core.stop()
}

// Done is closed once the menu has been torn down.
func (m *PagedMenu[T]) Done() <-chan struct{} {
	return m.core.done
}

func (m *PagedMenu[T]) handle(ev gateway.ReactionEvent) {
	switch ev.Emoji {
	case ReactStop:
		m.core.stop()
	case ReactLeft:
		m.turn(-1)
	case ReactRight:
		m.turn(1)
	}
}

// turn moves one page in the given direction. A missing adjacent page, or an
// error fetching it, leaves the menu on the current page.
func (m *PagedMenu[T]) turn(direction int) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	var (
		items []T
		err   error
	)
	if direction < 0 {
		items, _, err = m.core.pager.Previous(ctx)
	} else {
		items, _, err = m.core.pager.Next(ctx)
	}
	if err != nil {
		m.core.log.Warn().Err(err).Int("direction", direction).Msg("failed to fetch adjacent page")
		items = m.core.pager.Current()
	}

	m.core.edit(m.render(items, m.core.pager.Page()))
}
