package models

import "github.com/jingles/moosic/internal/spotify"

// Player ties a chat-platform user to their linked music session for the
// duration of one game. Players are not persisted; account links are.
type Player struct {
	// ID is the chat-platform user ID
	ID string

	// Name is the display name used in announcements
	Name string

	// Session is the player's linked music session handle. Shared with
	// whatever else holds a reference; never owned by the game.
	Session spotify.Session
}
