// Package spotify adapts the Spotify Web API to music.Catalog.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-music-assistant/internal/logger"
	"github.com/i474232898/weather-music-assistant/internal/music"
)

// Catalog implements music.Catalog. The credential pair is exchanged for a
// token on first use; a failed exchange is retried on the next call.
type Catalog struct {
	creds      clientcredentials.Config
	httpClient *http.Client
	apiURL     string
	limiter    *rate.Limiter
	circuit    *gobreaker.CircuitBreaker

	mu     sync.Mutex
	client *spotifyapi.Client
}

var _ music.Catalog = (*Catalog)(nil)

// Option customises a Catalog.
type Option func(*Catalog)

// WithAPIURL overrides the Web API root. It must end in "/".
func WithAPIURL(u string) Option {
	return func(c *Catalog) {
		if u == "" {
			return
		}
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.apiURL = u
	}
}

// WithTokenURL overrides the accounts token endpoint.
func WithTokenURL(u string) Option {
	return func(c *Catalog) {
		if u != "" {
			c.creds.TokenURL = u
		}
	}
}

// WithRateLimit throttles catalog calls to rps requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Catalog) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewCatalog builds a catalog for the client id/secret pair. httpClient carries
// timeouts for both the token exchange and API calls.
func NewCatalog(httpClient *http.Client, clientID, clientSecret string, opts ...Option) *Catalog {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	c := &Catalog{
		creds: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyauth.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "spotify",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) connect() (*spotifyapi.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.creds.ClientID == "" || c.creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: catalog credentials are not configured", music.ErrCatalogUnavailable)
	}

	// The token source outlives any single request, so it gets its own context.
	authCtx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
	src := c.creds.TokenSource(authCtx)
	if _, err := src.Token(); err != nil {
		return nil, fmt.Errorf("%w: authenticate: %w", music.ErrCatalogUnavailable, err)
	}
	logger.Debugf("spotify: obtained session token")

	var opts []spotifyapi.ClientOption
	if c.apiURL != "" {
		opts = append(opts, spotifyapi.WithBaseURL(c.apiURL))
	}
	c.client = spotifyapi.New(oauth2.NewClient(authCtx, src), opts...)
	return c.client, nil
}

// call runs fn through the rate limiter and circuit breaker.
func (c *Catalog) call(ctx context.Context, fn func(*spotifyapi.Client) (interface{}, error)) (interface{}, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait canceled: %w", music.ErrCatalogUnavailable, err)
		}
	}

	res, err := c.circuit.Execute(func() (interface{}, error) {
		return fn(client)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open: %v", music.ErrCatalogUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", music.ErrCatalogUnavailable, err)
	}
	return res, nil
}

// SearchPlaylists runs a playlist search.
func (c *Catalog) SearchPlaylists(ctx context.Context, query string, limit int) ([]music.Playlist, error) {
	res, err := c.call(ctx, func(client *spotifyapi.Client) (interface{}, error) {
		var opts []spotifyapi.RequestOption
		if limit > 0 {
			opts = append(opts, spotifyapi.Limit(limit))
		}
		return client.Search(ctx, query, spotifyapi.SearchTypePlaylist, opts...)
	})
	if err != nil {
		return nil, err
	}

	result, _ := res.(*spotifyapi.SearchResult)
	if result == nil {
		return nil, nil
	}
	return playlistsFrom(result.Playlists), nil
}

// FetchPlaylistTracks lists up to limit tracks of a playlist. Accepts a bare id or a URI.
func (c *Catalog) FetchPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]music.Track, error) {
	id := spotifyapi.ID(bareID(playlistID))

	res, err := c.call(ctx, func(client *spotifyapi.Client) (interface{}, error) {
		var opts []spotifyapi.RequestOption
		if limit > 0 {
			opts = append(opts, spotifyapi.Limit(limit))
		}
		return client.GetPlaylistItems(ctx, id, opts...)
	})
	if err != nil {
		return nil, err
	}

	page, _ := res.(*spotifyapi.PlaylistItemPage)
	return tracksFrom(page), nil
}

func bareID(s string) string {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// playlistsFrom skips the null entries the search endpoint sometimes returns.
func playlistsFrom(page *spotifyapi.SimplePlaylistPage) []music.Playlist {
	if page == nil {
		return nil
	}
	out := make([]music.Playlist, 0, len(page.Playlists))
	for _, p := range page.Playlists {
		if p.ID == "" {
			continue
		}
		link := p.ExternalURLs["spotify"]
		if link == "" {
			link = music.PlaylistURL(string(p.ID))
		}
		out = append(out, music.Playlist{ID: string(p.ID), Name: p.Name, URL: link})
	}
	return out
}

// tracksFrom keeps music tracks only; episodes and removed tracks have no Track.
func tracksFrom(page *spotifyapi.PlaylistItemPage) []music.Track {
	if page == nil {
		return nil
	}
	out := make([]music.Track, 0, len(page.Items))
	for _, item := range page.Items {
		t := item.Track.Track
		if t == nil {
			continue
		}
		artists := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}
		out = append(out, music.Track{
			Name:    t.Name,
			Artists: artists,
			URL:     t.ExternalURLs["spotify"],
		})
	}
	return out
}
