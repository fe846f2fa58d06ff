package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	accountsURL = "https://accounts.spotify.com/api/token"
	apiBaseURL  = "https://api.spotify.com/v1"
)

// ErrNoActiveDevice is returned when the user has no device available for
// playback control.
var ErrNoActiveDevice = errors.New("no active playback device")

// ClientConfig holds the application credentials shared by all sessions.
type ClientConfig struct {
	ClientID     string
	ClientSecret string

	// HTTPClient is optional; a default with a 10s timeout is used when nil
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Client implements Authenticator against the Spotify Web API.
type Client struct {
	cfg        *ClientConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient validates the credentials and returns an Authenticator.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("client ID and secret cannot be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        cfg.Logger.With().Str("component", "spotify").Logger(),
	}, nil
}

// SessionFromRefreshToken exchanges a stored refresh token for an access
// token and wraps it in a Session.
func (c *Client) SessionFromRefreshToken(ctx context.Context, userID, refreshToken string) (Session, error) {
	s := &restSession{
		client:       c,
		userID:       userID,
		refreshToken: refreshToken,
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// restSession is a live per-user API handle. Access tokens are refreshed
// transparently when they expire.
type restSession struct {
	client       *Client
	userID       string
	refreshToken string

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func (s *restSession) UserID() string { return s.userID }

func (s *restSession) refresh(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", s.refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, accountsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	basic := base64.StdEncoding.EncodeToString(
		[]byte(s.client.cfg.ClientID + ":" + s.client.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to refresh access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token refresh returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	s.mu.Lock()
	s.accessToken = body.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	s.mu.Unlock()

	return nil
}

func (s *restSession) token(ctx context.Context) (string, error) {
	s.mu.Lock()
	token := s.accessToken
	expired := time.Now().After(s.expiresAt.Add(-30 * time.Second))
	s.mu.Unlock()

	if expired {
		if err := s.refresh(ctx); err != nil {
			return "", err
		}
		s.mu.Lock()
		token = s.accessToken
		s.mu.Unlock()
	}
	return token, nil
}

func (s *restSession) do(ctx context.Context, method, path string, payload any, out any) error {
	token, err := s.token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, apiBaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNoActiveDevice
	case resp.StatusCode >= 400:
		return fmt.Errorf("spotify API returned status %d for %s %s", resp.StatusCode, method, path)
	case resp.StatusCode == http.StatusNoContent || out == nil:
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *restSession) StartPlayback(ctx context.Context, trackIDs []string) error {
	uris := make([]string, 0, len(trackIDs))
	for _, id := range trackIDs {
		uris = append(uris, "spotify:track:"+id)
	}
	return s.do(ctx, http.MethodPut, "/me/player/play", map[string]any{"uris": uris}, nil)
}

func (s *restSession) Seek(ctx context.Context, offsetMs int) error {
	return s.do(ctx, http.MethodPut, "/me/player/seek?position_ms="+strconv.Itoa(offsetMs), nil, nil)
}

type trackJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	DurationMs int `json:"duration_ms"`
}

func (t *trackJSON) toTrack() Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	return Track{
		ID:         t.ID,
		Title:      t.Name,
		Artists:    artists,
		DurationMs: t.DurationMs,
	}
}

func (s *restSession) CurrentlyPlaying(ctx context.Context) (*Track, error) {
	var body struct {
		Item *trackJSON `json:"item"`
	}
	if err := s.do(ctx, http.MethodGet, "/me/player/currently-playing", nil, &body); err != nil {
		return nil, err
	}
	if body.Item == nil {
		return nil, nil
	}
	track := body.Item.toTrack()
	return &track, nil
}

func (s *restSession) Playlists(ctx context.Context) ([]Playlist, error) {
	var body struct {
		Items []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Tracks struct {
				Total int `json:"total"`
			} `json:"tracks"`
		} `json:"items"`
	}
	if err := s.do(ctx, http.MethodGet, "/me/playlists?limit=50", nil, &body); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(body.Items))
	for _, item := range body.Items {
		playlists = append(playlists, Playlist{
			ID:         item.ID,
			Name:       item.Name,
			TrackCount: item.Tracks.Total,
		})
	}
	return playlists, nil
}

func (s *restSession) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	var body struct {
		Items []struct {
			Track *trackJSON `json:"track"`
		} `json:"items"`
	}
	if err := s.do(ctx, http.MethodGet, "/playlists/"+playlistID+"/tracks?limit=100", nil, &body); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(body.Items))
	for _, item := range body.Items {
		// Local files come back without a track object
		if item.Track == nil || item.Track.ID == "" {
			continue
		}
		tracks = append(tracks, item.Track.toTrack())
	}
	return tracks, nil
}
