package lyrics

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_lyrics.go github.com/jingles/moosic/internal/lyrics Provider

// SearchResult is one candidate song match for a free-text query.
type SearchResult struct {
	Title  string
	Artist string
	URL    string
}

// Section is one labeled block of a song's lyrics, e.g. a verse or chorus.
type Section struct {
	Heading string
	Text    string
}

// Provider resolves songs to lyrics. Used only by the lyric-guessing game.
type Provider interface {
	// SearchSongs returns candidate matches for a query, best first
	SearchSongs(ctx context.Context, query string) ([]SearchResult, error)

	// LyricSections fetches the lyrics behind a search result URL, split
	// into labeled sections
	LyricSections(ctx context.Context, url string) ([]Section, error)
}
