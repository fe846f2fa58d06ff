package sessions

import (
	"context"

	"github.com/jingles/moosic/internal/spotify"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/jingles/moosic/internal/services/sessions Service

// Service is the session store: it hands out live music sessions for linked
// users, caching them in memory and lazily rehydrating from the account
// repository on a miss. It replaces the source design's process-wide map.
type Service interface {
	// Get returns the user's live session, rehydrating it from the stored
	// refresh token if needed. Returns ErrNotLinked when the user has no
	// account link.
	Get(ctx context.Context, userID string) (spotify.Session, error)

	// Link stores an account link and caches a live session for it
	Link(ctx context.Context, input *LinkInput) (spotify.Session, error)

	// Unlink evicts the cached session and removes the stored link
	Unlink(ctx context.Context, userID string) error
}
