package game

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Registry enforces the one-game-per-channel and one-game-per-player rules.
// Sessions register on creation and release their channel and every joined
// player when they end.
type Registry struct {
	log zerolog.Logger

	mu        sync.Mutex
	byChannel map[string]*Session
	byPlayer  map[string]string // player ID -> channel ID
}

// NewRegistry creates an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		log:       log.With().Str("component", "game_registry").Logger(),
		byChannel: make(map[string]*Session),
		byPlayer:  make(map[string]string),
	}
}

// Create builds, registers, and opens a session from the config. The
// config's OnJoin and OnEnd hooks are installed by the registry; any values
// already set are overwritten. Fails when the channel already hosts a game
// or the owner is playing elsewhere.
func (r *Registry) Create(ctx context.Context, cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Channel == nil {
		return nil, ErrNilChannel
	}
	if cfg.Owner == nil {
		return nil, ErrNilOwner
	}

	channelID := cfg.Channel.ID()

	r.mu.Lock()
	if _, ok := r.byChannel[channelID]; ok {
		r.mu.Unlock()
		return nil, ErrGameInChannel
	}
	if _, ok := r.byPlayer[cfg.Owner.ID]; ok {
		r.mu.Unlock()
		return nil, ErrPlayerInGame
	}
	r.byPlayer[cfg.Owner.ID] = channelID
	r.mu.Unlock()

	cfg.OnJoin = func(playerID string) error {
		return r.reserve(playerID, channelID)
	}
	cfg.OnEnd = func() {
		r.release(channelID)
	}

	session, err := New(cfg)
	if err != nil {
		r.release(channelID)
		return nil, err
	}

	r.mu.Lock()
	r.byChannel[channelID] = session
	r.mu.Unlock()

	if err := session.Open(ctx); err != nil {
		r.release(channelID)
		return nil, err
	}

	r.log.Info().
		Str("channel_id", channelID).
		Str("game", cfg.Rules.Name()).
		Msg("game created")
	return session, nil
}

// Get returns the session running in a channel, if any.
func (r *Registry) Get(channelID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.byChannel[channelID]
	return session, ok
}

// reserve claims a player for a channel's game.
func (r *Registry) reserve(playerID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if held, ok := r.byPlayer[playerID]; ok && held != channelID {
		return ErrPlayerInGame
	}
	r.byPlayer[playerID] = channelID
	return nil
}

// release frees a channel and every player reserved for it.
func (r *Registry) release(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byChannel, channelID)
	for playerID, held := range r.byPlayer {
		if held == channelID {
			delete(r.byPlayer, playerID)
		}
	}
}
