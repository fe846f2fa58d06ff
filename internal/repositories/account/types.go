package account

import "time"

// Link is a persisted account link between a chat user and the music
// platform. Only the long-lived refresh token is stored; access tokens are
// minted on demand.
type Link struct {
	// UserID is the chat-platform user ID
	UserID string `json:"user_id"`

	// RefreshToken is the music platform's long-lived token
	RefreshToken string `json:"refresh_token"`

	// LinkedAt is when the account was linked
	LinkedAt time.Time `json:"linked_at"`
}

// SaveLinkInput contains parameters for saving an account link
type SaveLinkInput struct {
	Link *Link
}

// GetLinkInput contains parameters for retrieving an account link
type GetLinkInput struct {
	UserID string
}

// DeleteLinkInput contains parameters for removing an account link
type DeleteLinkInput struct {
	UserID string
}
