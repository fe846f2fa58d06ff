package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const geniusSearchURL = "https://api.genius.com/search"

// GeniusConfig holds settings for the Genius-backed provider.
type GeniusConfig struct {
	Token string

	// HTTPClient is optional; a default with a 10s timeout is used when nil
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Genius implements Provider using the Genius search API and lyric pages.
type Genius struct {
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewGenius validates the token and returns a Genius provider.
func NewGenius(cfg *GeniusConfig) (*Genius, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Genius{
		token:      cfg.Token,
		httpClient: httpClient,
		log:        cfg.Logger.With().Str("component", "genius").Logger(),
	}, nil
}

// SearchSongs queries the Genius search endpoint.
func (g *Genius) SearchSongs(ctx context.Context, query string) ([]SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		geniusSearchURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genius search returned status %d", resp.StatusCode)
	}

	var body struct {
		Response struct {
			Hits []struct {
				Result struct {
					Title         string `json:"title"`
					PrimaryArtist struct {
						Name string `json:"name"`
					} `json:"primary_artist"`
					URL string `json:"url"`
				} `json:"result"`
			} `json:"hits"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]SearchResult, 0, len(body.Response.Hits))
	for _, hit := range body.Response.Hits {
		results = append(results, SearchResult{
			Title:  hit.Result.Title,
			Artist: hit.Result.PrimaryArtist.Name,
			URL:    hit.Result.URL,
		})
	}
	return results, nil
}

var (
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	breakRe   = regexp.MustCompile(`<br\s*/?>`)
	headingRe = regexp.MustCompile(`^\[([^\]]+)\]$`)
)

// LyricSections fetches a lyric page and splits the lyric text into sections
// keyed by the bracketed [Verse]/[Chorus] labels embedded in it.
func (g *Genius) LyricSections(ctx context.Context, pageURL string) ([]Section, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lyric page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lyric page returned status %d", resp.StatusCode)
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	sections := ParseSections(extractLyricText(string(page)))
	if len(sections) == 0 {
		return nil, errors.New("no lyric sections found on page")
	}
	return sections, nil
}

// extractLyricText pulls the plain lyric text out of the page's lyric
// containers, dropping markup.
func extractLyricText(page string) string {
	var parts []string
	for _, marker := range []string{`data-lyrics-container="true"`, `class="lyrics"`} {
		rest := page
		for {
			idx := strings.Index(rest, marker)
			if idx < 0 {
				break
			}
			rest = rest[idx:]
			open := strings.Index(rest, ">")
			if open < 0 {
				break
			}
			end := strings.Index(rest[open:], "</div>")
			if end < 0 {
				break
			}
			parts = append(parts, rest[open+1:open+end])
			rest = rest[open+end:]
		}
		if len(parts) > 0 {
			break
		}
	}

	text := strings.Join(parts, "\n")
	text = breakRe.ReplaceAllString(text, "\n")
	text = tagRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&#x27;", "'")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	return text
}

// ParseSections splits lyric text on its bracketed section labels. Lines
// before the first label become an unlabeled section.
func ParseSections(text string) []Section {
	var sections []Section
	current := Section{}

	flush := func() {
		current.Text = strings.TrimSpace(current.Text)
		if current.Text != "" {
			sections = append(sections, current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			current = Section{Heading: m[1]}
			continue
		}
		if line == "" {
			continue
		}
		current.Text += line + "\n"
	}
	flush()

	return sections
}
