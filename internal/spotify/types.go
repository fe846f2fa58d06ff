package spotify

import "strings"

// Track is the subset of track metadata the games care about.
type Track struct {
	ID         string
	Title      string
	Artists    []string
	DurationMs int
}

// ArtistNames joins the track's artists for display and grading.
func (t *Track) ArtistNames() string {
	return strings.Join(t.Artists, ", ")
}

// SearchQuery builds the free-text query used to resolve this track against
// the lyrics provider.
func (t *Track) SearchQuery() string {
	if len(t.Artists) == 0 {
		return t.Title
	}
	return t.Title + " " + t.Artists[0]
}

// Playlist identifies one of a user's playlists.
type Playlist struct {
	ID         string
	Name       string
	TrackCount int
}
