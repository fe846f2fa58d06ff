package game

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/lyrics"
	"github.com/jingles/moosic/internal/models"
	"github.com/jingles/moosic/internal/random"
	"github.com/jingles/moosic/internal/similarity"
	"github.com/jingles/moosic/internal/spotify"
	"github.com/rs/zerolog"
)

const (
	lyricGuessRoundDuration = 20 * time.Second
	lyricGuessThreshold     = 0.50
)

// LyricGuessConfig holds dependencies for a lyric-guessing game.
type LyricGuessConfig struct {
	// Owner drives playlist sampling
	Owner *models.Player

	// Playlist, when set, restricts sampling to one playlist
	Playlist *spotify.Playlist

	// Provider resolves sampled tracks to their lyrics
	Provider lyrics.Provider

	Random *random.Source
	Logger zerolog.Logger
}

// LyricGuess shows a lyric section with one line blanked out and grades
// guesses against the hidden line. No playback is involved.
type LyricGuess struct {
	owner    *models.Player
	playlist *spotify.Playlist
	provider lyrics.Provider
	random   *random.Source
	log      zerolog.Logger

	rounds  int
	prompts []lyricPrompt
}

type lyricPrompt struct {
	// song is "Title — Artist", shown in the round header
	song string

	// display is the section text with the answer line blanked
	display string

	answer   string
	stripped string
}

// NewLyricGuess validates the config.
func NewLyricGuess(cfg *LyricGuessConfig) (*LyricGuess, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Owner == nil {
		return nil, ErrNilOwner
	}
	if cfg.Provider == nil {
		return nil, ErrNilProvider
	}
	if cfg.Random == nil {
		cfg.Random = random.New(nil)
	}

	return &LyricGuess{
		owner:    cfg.Owner,
		playlist: cfg.Playlist,
		provider: cfg.Provider,
		random:   cfg.Random,
		log:      cfg.Logger.With().Str("component", "lyric_guess").Logger(),
	}, nil
}

func (g *LyricGuess) Name() string {
	return "Lyric Guess"
}

func (g *LyricGuess) RoundDuration() time.Duration {
	return lyricGuessRoundDuration
}

func (g *LyricGuess) Threshold() float64 {
	return lyricGuessThreshold
}

// Prepare samples tracks from the owner's library and resolves each to a
// lyric section with one hidden line. Tracks whose lyrics cannot be found
// are skipped; the attempt budget bounds the whole run.
func (g *LyricGuess) Prepare(ctx context.Context, rounds int) error {
	g.rounds = rounds
	g.prompts = g.prompts[:0]

	playlists, err := g.samplePool(ctx)
	if err != nil {
		return err
	}

	attempts := 0
	budget := rounds*10 + 20

	for len(g.prompts) < rounds {
		attempts++
		if attempts > budget {
			return ErrSampleExhausted
		}

		track, ok := g.sampleTrack(ctx, playlists)
		if !ok {
			continue
		}

		prompt, ok := g.buildPrompt(ctx, track)
		if !ok {
			continue
		}
		g.prompts = append(g.prompts, prompt)
	}

	return nil
}

func (g *LyricGuess) samplePool(ctx context.Context) ([]spotify.Playlist, error) {
	if g.playlist != nil {
		return []spotify.Playlist{*g.playlist}, nil
	}

	playlists, err := g.owner.Session.Playlists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlists: %w", err)
	}
	if len(playlists) == 0 {
		return nil, ErrSampleExhausted
	}
	return playlists, nil
}

func (g *LyricGuess) sampleTrack(ctx context.Context, playlists []spotify.Playlist) (*spotify.Track, bool) {
	playlist := playlists[g.random.Intn(len(playlists))]

	tracks, err := g.owner.Session.PlaylistTracks(ctx, playlist.ID)
	if err != nil {
		g.log.Warn().Err(err).Str("playlist_id", playlist.ID).Msg("skipping unreadable playlist")
		return nil, false
	}
	if len(tracks) == 0 {
		return nil, false
	}

	track := tracks[g.random.Intn(len(tracks))]
	return &track, true
}

// buildPrompt resolves a track to a lyric prompt. The lyrics provider search
// rarely returns the track verbatim, so the candidate whose title matches
// the track title best is taken.
func (g *LyricGuess) buildPrompt(ctx context.Context, track *spotify.Track) (lyricPrompt, bool) {
	results, err := g.provider.SearchSongs(ctx, track.SearchQuery())
	if err != nil {
		g.log.Warn().Err(err).Str("track", track.Title).Msg("lyrics search failed")
		return lyricPrompt{}, false
	}
	if len(results) == 0 {
		return lyricPrompt{}, false
	}

	best := results[0]
	bestScore := -1.0
	wanted := strings.ToLower(track.Title)
	for _, result := range results {
		score := similarity.PercentMatch(wanted, strings.ToLower(result.Title))
		if score > bestScore {
			best = result
			bestScore = score
		}
	}

	sections, err := g.provider.LyricSections(ctx, best.URL)
	if err != nil {
		g.log.Warn().Err(err).Str("url", best.URL).Msg("failed to fetch lyrics")
		return lyricPrompt{}, false
	}
	if len(sections) == 0 {
		return lyricPrompt{}, false
	}

	section := sections[g.random.Intn(len(sections))]
	lines := nonBlankLines(section.Text)
	if len(lines) == 0 {
		return lyricPrompt{}, false
	}
	answer := lines[g.random.Intn(len(lines))]

	return lyricPrompt{
		song:     fmt.Sprintf("%s — %s", track.Title, track.ArtistNames()),
		display:  blankOutLine(section.Text, answer),
		answer:   answer,
		stripped: StripToAlnum(answer),
	}, true
}

// BeginRound shows the blanked section. Nothing is played.
func (g *LyricGuess) BeginRound(_ context.Context, round int, _ []*models.Player) (*Prompt, error) {
	prompt := g.prompts[round]

	return &Prompt{
		Display: &gateway.Content{
			Embed: &gateway.Embed{
				Title:       fmt.Sprintf("Round %d of %d — %s", round+1, g.rounds, prompt.song),
				Description: "```\n" + prompt.display + "\n```",
				Footer:      "Powered by Genius",
			},
		},
		Answer:   prompt.answer,
		Stripped: prompt.stripped,
	}, nil
}

// Normalize strips a guess to its letters and digits, so punctuation and
// spacing differences never cost accuracy.
func (g *LyricGuess) Normalize(raw string) string {
	return StripToAlnum(raw)
}

func (g *LyricGuess) Results(standings []Standing, aux *Auxiliary) *gateway.Content {
	embed := &gateway.Embed{
		Title:       "Lyric Guess — Final Results",
		Description: formatStandings(standings),
		Footer:      "Powered by Genius",
		Timestamp:   time.Now(),
	}
	appendAuxiliaryFields(embed, aux)
	return &gateway.Content{Embed: embed}
}

// StripToAlnum lowercases the input and drops everything that is not a
// letter or digit.
func StripToAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// BlankLine masks every letter and digit of a lyric line with underscores,
// keeping spacing and punctuation as a shape hint.
func BlankLine(line string) string {
	var b strings.Builder
	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func blankOutLine(text, answer string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == answer {
			lines[i] = BlankLine(line)
			break
		}
	}
	return strings.Join(lines, "\n")
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
