package discord

import (
	"fmt"
	"testing"

	"github.com/jingles/moosic/internal/menu"
	"github.com/jingles/moosic/internal/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func somePlaylists(n int) []spotify.Playlist {
	playlists := make([]spotify.Playlist, n)
	for i := range playlists {
		playlists[i] = spotify.Playlist{
			ID:         fmt.Sprintf("pl-%d", i),
			Name:       fmt.Sprintf("Playlist %d", i),
			TrackCount: i + 1,
		}
	}
	return playlists
}

func TestCapForSelection(t *testing.T) {
	small, truncated := capForSelection(somePlaylists(3))
	assert.Len(t, small, 3)
	assert.False(t, truncated)

	exact, truncated := capForSelection(somePlaylists(menu.MaxSelectionItems))
	assert.Len(t, exact, menu.MaxSelectionItems)
	assert.False(t, truncated)

	capped, truncated := capForSelection(somePlaylists(menu.MaxSelectionItems + 5))
	require.Len(t, capped, menu.MaxSelectionItems)
	assert.True(t, truncated)
	// The first playlists survive, in order
	assert.Equal(t, "pl-0", capped[0].ID)
	assert.Equal(t, fmt.Sprintf("pl-%d", menu.MaxSelectionItems-1), capped[len(capped)-1].ID)
}

func TestRenderPlaylistSelectionMarksCursor(t *testing.T) {
	content := renderPlaylistSelection(somePlaylists(3), 2)

	require.NotNil(t, content.Embed)
	assert.Contains(t, content.Embed.Description, "▶ **Playlist 1**")
	assert.NotContains(t, content.Embed.Description, "▶ **Playlist 0**")
}
