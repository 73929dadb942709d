package music

import (
	"context"
	"errors"
)

var (
	// ErrCatalogUnavailable covers transport and authentication failures of the catalog.
	ErrCatalogUnavailable = errors.New("music catalog unavailable")
	// ErrNotFound means no playlist matched a location query.
	ErrNotFound = errors.New("no matching playlist")
	// ErrUnknownMood is returned for a mood outside the five supported tags.
	ErrUnknownMood = errors.New("unknown mood")
)

// Playlist is a catalog playlist as returned by search.
type Playlist struct {
	ID   string
	Name string
	URL  string
}

// Track is one entry of a playlist.
type Track struct {
	Name    string
	Artists []string
	URL     string
}

// Catalog is the music catalog capability the engine depends on.
type Catalog interface {
	// SearchPlaylists runs a free-text playlist search. limit <= 0 leaves the cap to the provider.
	SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error)
	FetchPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]Track, error)
}
