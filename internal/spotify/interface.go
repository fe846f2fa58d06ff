package spotify

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_spotify.go github.com/jingles/moosic/internal/spotify Session,Authenticator

// Session exposes the per-user music operations the bot needs. All calls hit
// the streaming platform and may block; failures are returned as-is for the
// caller to decide whether the surrounding action can continue.
type Session interface {
	// UserID returns the chat-platform user this session belongs to
	UserID() string

	// StartPlayback begins playing the given track IDs on the user's
	// active device
	StartPlayback(ctx context.Context, trackIDs []string) error

	// Seek moves the playhead of the current track
	Seek(ctx context.Context, offsetMs int) error

	// CurrentlyPlaying returns the track the user is listening to, or nil
	// when nothing is playing
	CurrentlyPlaying(ctx context.Context) (*Track, error)

	// Playlists returns the user's playlists
	Playlists(ctx context.Context) ([]Playlist, error)

	// PlaylistTracks resolves the tracks of one playlist
	PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error)
}

// Authenticator turns a stored refresh token back into a live Session.
type Authenticator interface {
	SessionFromRefreshToken(ctx context.Context, userID, refreshToken string) (Session, error)
}
