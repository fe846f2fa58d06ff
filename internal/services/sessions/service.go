package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jingles/moosic/internal/repositories/account"
	"github.com/jingles/moosic/internal/spotify"
	"github.com/rs/zerolog"
)

// Define errors
var (
	ErrNotLinked      = errors.New("user has no linked music account")
	ErrNilConfig      = errors.New("config cannot be nil")
	ErrNilAccountRepo = errors.New("account repository cannot be nil")
	ErrNilAuth        = errors.New("authenticator cannot be nil")
	ErrNilClock       = errors.New("clock cannot be nil")
	ErrEmptyUserID    = errors.New("user ID cannot be empty")
	ErrEmptyToken     = errors.New("refresh token cannot be empty")
)

// service implements the Service interface
type service struct {
	cfg *Config
	log zerolog.Logger

	mu    sync.Mutex
	cache map[string]spotify.Session
}

// New creates a new session store
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.AccountRepo == nil {
		return nil, ErrNilAccountRepo
	}
	if cfg.Auth == nil {
		return nil, ErrNilAuth
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		cfg:   cfg,
		log:   cfg.Logger.With().Str("component", "sessions").Logger(),
		cache: make(map[string]spotify.Session),
	}, nil
}

// Get returns the cached session for a user, rehydrating from the account
// repository on a miss.
func (s *service) Get(ctx context.Context, userID string) (spotify.Session, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.Lock()
	cached, ok := s.cache[userID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	link, err := s.cfg.AccountRepo.GetLink(ctx, &account.GetLinkInput{
		UserID: userID,
	})
	if errors.Is(err, account.ErrLinkNotFound) {
		return nil, ErrNotLinked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account link: %w", err)
	}

	session, err := s.cfg.Auth.SessionFromRefreshToken(ctx, userID, link.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to rehydrate session: %w", err)
	}

	s.mu.Lock()
	// Another Get may have raced us here; keep whichever landed first.
	if existing, ok := s.cache[userID]; ok {
		session = existing
	} else {
		s.cache[userID] = session
	}
	s.mu.Unlock()

	s.log.Debug().Str("user_id", userID).Msg("rehydrated music session from stored link")
	return session, nil
}

// Link stores the account link and caches a live session.
func (s *service) Link(ctx context.Context, input *LinkInput) (spotify.Session, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrEmptyUserID
	}
	if input.RefreshToken == "" {
		return nil, ErrEmptyToken
	}

	session, err := s.cfg.Auth.SessionFromRefreshToken(ctx, input.UserID, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	err = s.cfg.AccountRepo.SaveLink(ctx, &account.SaveLinkInput{
		Link: &account.Link{
			UserID:       input.UserID,
			RefreshToken: input.RefreshToken,
			LinkedAt:     s.cfg.Clock.Now(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save account link: %w", err)
	}

	s.mu.Lock()
	s.cache[input.UserID] = session
	s.mu.Unlock()

	s.log.Info().Str("user_id", input.UserID).Msg("linked music account")
	return session, nil
}

// Unlink evicts the cached session and deletes the stored link.
func (s *service) Unlink(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()

	err := s.cfg.AccountRepo.DeleteLink(ctx, &account.DeleteLinkInput{
		UserID: userID,
	})
	if errors.Is(err, account.ErrLinkNotFound) {
		return ErrNotLinked
	}
	if err != nil {
		return fmt.Errorf("failed to delete account link: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("unlinked music account")
	return nil
}
