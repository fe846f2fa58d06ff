package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/models"
	"github.com/jingles/moosic/internal/random"
	"github.com/jingles/moosic/internal/spotify"
	"github.com/rs/zerolog"
)

// GuessType is what players guess about the playing track.
type GuessType string

const (
	GuessTitle  GuessType = "title"
	GuessArtist GuessType = "artist"
)

const (
	songGuessRoundDuration = 15 * time.Second
	songGuessThreshold     = 0.70

	// maxSeekFraction keeps the random seek away from the tail of the
	// track so every round has audible time left
	maxSeekFraction = 0.8
)

// SongGuessConfig holds dependencies for a song-guessing game.
type SongGuessConfig struct {
	// Owner drives playlist sampling; playback targets every player
	Owner *models.Player

	// Type selects whether titles or artists are guessed
	Type GuessType

	// Playlist, when set, restricts sampling to one playlist instead of
	// drawing from all of the owner's playlists
	Playlist *spotify.Playlist

	Random *random.Source
	Logger zerolog.Logger
}

// SongGuess plays a random track on every player's device each round and
// grades guesses against its title or artists.
type SongGuess struct {
	owner    *models.Player
	typ      GuessType
	playlist *spotify.Playlist
	random   *random.Source
	log      zerolog.Logger

	rounds int
	queue  []spotify.Track
}

// NewSongGuess validates the config.
func NewSongGuess(cfg *SongGuessConfig) (*SongGuess, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Owner == nil {
		return nil, ErrNilOwner
	}
	if cfg.Type != GuessTitle && cfg.Type != GuessArtist {
		return nil, ErrInvalidGuessType
	}
	if cfg.Random == nil {
		cfg.Random = random.New(nil)
	}

	return &SongGuess{
		owner:    cfg.Owner,
		typ:      cfg.Type,
		playlist: cfg.Playlist,
		random:   cfg.Random,
		log:      cfg.Logger.With().Str("component", "song_guess").Logger(),
	}, nil
}

func (g *SongGuess) Name() string {
	return "Song Guess"
}

func (g *SongGuess) RoundDuration() time.Duration {
	return songGuessRoundDuration
}

func (g *SongGuess) Threshold() float64 {
	return songGuessThreshold
}

// Prepare samples one track per round from the owner's library. A playlist
// that errors or turns out empty is marked bad and never drawn again; the
// attempt budget bounds the whole sampling run.
func (g *SongGuess) Prepare(ctx context.Context, rounds int) error {
	g.rounds = rounds
	g.queue = g.queue[:0]

	if g.playlist != nil {
		tracks, err := g.owner.Session.PlaylistTracks(ctx, g.playlist.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch playlist tracks: %w", err)
		}
		if len(tracks) == 0 {
			return ErrSampleExhausted
		}
		for i := 0; i < rounds; i++ {
			g.queue = append(g.queue, tracks[g.random.Intn(len(tracks))])
		}
		return nil
	}

	playlists, err := g.owner.Session.Playlists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}
	if len(playlists) == 0 {
		return ErrSampleExhausted
	}

	bad := make(map[string]bool)
	attempts := 0
	budget := rounds*10 + 20

	for len(g.queue) < rounds {
		attempts++
		if attempts > budget {
			return ErrSampleExhausted
		}
		if len(bad) == len(playlists) {
			return ErrSampleExhausted
		}

		playlist := playlists[g.random.Intn(len(playlists))]
		if bad[playlist.ID] {
			continue
		}

		tracks, err := g.owner.Session.PlaylistTracks(ctx, playlist.ID)
		if err != nil {
			g.log.Warn().Err(err).Str("playlist_id", playlist.ID).Msg("skipping unreadable playlist")
			bad[playlist.ID] = true
			continue
		}
		if len(tracks) == 0 {
			bad[playlist.ID] = true
			continue
		}

		g.queue = append(g.queue, tracks[g.random.Intn(len(tracks))])
	}

	return nil
}

// BeginRound starts the round's track on every player's device at a random
// offset. A single player's playback failure only costs that player; a
// failure on the owner's session gets one whole retry before the round is
// allowed to proceed silently for them too.
func (g *SongGuess) BeginRound(ctx context.Context, round int, players []*models.Player) (*Prompt, error) {
	track := g.queue[round]

	seekMs := 0
	if track.DurationMs > 0 {
		seekMs = g.random.Intn(int(float64(track.DurationMs) * maxSeekFraction))
	}

	if failed := g.playAll(ctx, players, &track, seekMs); failed {
		g.log.Warn().Int("round", round).Msg("owner playback failed, retrying round playback once")
		g.playAll(ctx, players, &track, seekMs)
	}

	answer := track.ArtistNames()
	if g.typ == GuessTitle {
		answer = CanonicalTitle(track.Title)
	}

	return &Prompt{
		Display: &gateway.Content{
			Text: fmt.Sprintf("**Round %d of %d** — listen up! What is the **%s** of this song?", round+1, g.rounds, g.typ),
		},
		Answer:   answer,
		Stripped: strings.ToLower(answer),
	}, nil
}

// playAll reports whether the owner's playback call failed.
func (g *SongGuess) playAll(ctx context.Context, players []*models.Player, track *spotify.Track, seekMs int) bool {
	ownerFailed := false
	for _, player := range players {
		if err := g.play(ctx, player, track, seekMs); err != nil {
			g.log.Warn().Err(err).Str("player_id", player.ID).Msg("failed to start playback")
			if player.ID == g.owner.ID {
				ownerFailed = true
			}
		}
	}
	return ownerFailed
}

func (g *SongGuess) play(ctx context.Context, player *models.Player, track *spotify.Track, seekMs int) error {
	if err := player.Session.StartPlayback(ctx, []string{track.ID}); err != nil {
		return err
	}
	return player.Session.Seek(ctx, seekMs)
}

// Normalize lowercases and trims a guess; matching is case-insensitive.
func (g *SongGuess) Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (g *SongGuess) Results(standings []Standing, aux *Auxiliary) *gateway.Content {
	embed := &gateway.Embed{
		Title:       "Song Guess — Final Results",
		Description: formatStandings(standings),
		Footer:      "Powered by Spotify",
		Timestamp:   time.Now(),
	}
	appendAuxiliaryFields(embed, aux)
	return &gateway.Content{Embed: embed}
}

// CanonicalTitle strips remaster and featuring annotations from a track
// title by cutting at the first dash or opening parenthesis, e.g.
// "Yesterday - Remastered 2015" becomes "Yesterday".
func CanonicalTitle(title string) string {
	if i := strings.IndexAny(title, "-("); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

func formatStandings(standings []Standing) string {
	if len(standings) == 0 {
		return "Nobody played."
	}

	var b strings.Builder
	for i, standing := range standings {
		fmt.Fprintf(&b, "%d. **%s** — %.0f points\n", i+1, standing.Player.Name, standing.Points)
	}
	return b.String()
}

func appendAuxiliaryFields(embed *gateway.Embed, aux *Auxiliary) {
	if aux == nil {
		return
	}
	if aux.FastestAverage != nil {
		embed.Fields = append(embed.Fields, gateway.EmbedField{
			Name:   "Fastest",
			Value:  fmt.Sprintf("%s (%.1fs average)", aux.FastestAverage.Player.Name, aux.FastestAverage.Value),
			Inline: true,
		})
	}
	if aux.MostAccurate != nil {
		embed.Fields = append(embed.Fields, gateway.EmbedField{
			Name:   "Most accurate",
			Value:  fmt.Sprintf("%s (%.0f%% average)", aux.MostAccurate.Player.Name, aux.MostAccurate.Value*100),
			Inline: true,
		})
	}
	if aux.MostCorrect != nil {
		embed.Fields = append(embed.Fields, gateway.EmbedField{
			Name:   "Most correct",
			Value:  fmt.Sprintf("%s (%.0f)", aux.MostCorrect.Player.Name, aux.MostCorrect.Value),
			Inline: true,
		})
	}
}
