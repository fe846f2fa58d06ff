package account

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/jingles/moosic/internal/repositories/account Repository

// Repository persists music-platform account links keyed by chat user ID.
type Repository interface {
	// SaveLink stores or replaces a user's account link
	SaveLink(ctx context.Context, input *SaveLinkInput) error

	// GetLink retrieves a user's account link
	GetLink(ctx context.Context, input *GetLinkInput) (*Link, error)

	// DeleteLink removes a user's account link
	DeleteLink(ctx context.Context, input *DeleteLinkInput) error
}
