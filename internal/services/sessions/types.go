package sessions

import (
	"github.com/jingles/moosic/internal/common/clock"
	"github.com/jingles/moosic/internal/repositories/account"
	"github.com/jingles/moosic/internal/spotify"
	"github.com/rs/zerolog"
)

// Config holds dependencies for the session store
type Config struct {
	// AccountRepo persists account links
	AccountRepo account.Repository

	// Auth turns stored refresh tokens into live sessions
	Auth spotify.Authenticator

	// Clock stamps new links
	Clock clock.Clock

	Logger zerolog.Logger
}

// LinkInput contains parameters for linking an account
type LinkInput struct {
	// UserID is the chat-platform user ID
	UserID string

	// RefreshToken is the music platform's long-lived token obtained from
	// the OAuth callback
	RefreshToken string
}
