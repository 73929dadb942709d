package music

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-music-assistant/internal/logger"
)

// MaxLocationTracks caps the tracks taken from the top location playlist.
const MaxLocationTracks = 50

var validate = validator.New()

// Engine turns moods and locations into recommendations. It never caches and never retries.
type Engine struct {
	catalog Catalog
}

// NewEngine creates an Engine over catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Recommend dispatches a Query to the matching strategy.
func (e *Engine) Recommend(ctx context.Context, q Query) (Result, error) {
	if err := validate.Struct(q); err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMood, string(q.Mood))
	}

	switch q.Kind {
	case ByMood:
		return e.RecommendByMood(ctx, q.Mood)
	case ByLocation:
		if strings.TrimSpace(q.Location) == "" {
			return Result{}, fmt.Errorf("location query without a location")
		}
		return e.RecommendByLocation(ctx, q.Location)
	default:
		return Result{}, fmt.Errorf("unsupported query kind %s", q.Kind)
	}
}

// RecommendByMood searches playlists for the mood's phrase and returns each one's
// name and link in provider order.
func (e *Engine) RecommendByMood(ctx context.Context, mood Mood) (Result, error) {
	phrase, err := mood.SearchPhrase()
	if err != nil {
		return Result{}, err
	}

	playlists, err := e.catalog.SearchPlaylists(ctx, phrase, 0)
	if err != nil {
		return Result{}, catalogErr(err)
	}
	logger.Debugf("mood %q search %q returned %d playlists", mood, phrase, len(playlists))

	items := make([]Item, 0, len(playlists))
	for _, p := range playlists {
		items = append(items, Item{Title: p.Name, Link: p.URL})
	}
	return Result{Items: items}, nil
}

// RecommendByLocation takes the top playlist for "top songs in <location>" and
// returns up to MaxLocationTracks of its tracks. ErrNotFound when nothing matches.
func (e *Engine) RecommendByLocation(ctx context.Context, location string) (Result, error) {
	query := "top songs in " + location

	playlists, err := e.catalog.SearchPlaylists(ctx, query, 1)
	if err != nil {
		return Result{}, catalogErr(err)
	}
	if len(playlists) == 0 {
		return Result{}, fmt.Errorf("%w for %q", ErrNotFound, location)
	}
	top := playlists[0]

	tracks, err := e.catalog.FetchPlaylistTracks(ctx, top.ID, MaxLocationTracks)
	if err != nil {
		return Result{}, catalogErr(err)
	}
	if len(tracks) > MaxLocationTracks {
		tracks = tracks[:MaxLocationTracks]
	}
	logger.Debugf("location %q playlist %s has %d tracks", location, top.ID, len(tracks))

	items := make([]Item, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, Item{
			Title:       t.Name,
			Attribution: strings.Join(t.Artists, ", "),
			Link:        top.URL,
		})
	}
	return Result{Items: items, PlaylistID: top.ID}, nil
}

func catalogErr(err error) error {
	if errors.Is(err, ErrCatalogUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}
