package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	spotifyapi "github.com/zmb3/spotify/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-music-assistant/internal/music"
)

func TestPlaylistsFrom(t *testing.T) {
	page := &spotifyapi.SimplePlaylistPage{
		Playlists: []spotifyapi.SimplePlaylist{
			{ID: "abc", Name: "Happy Hits", ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/playlist/abc"}},
			{},
			{ID: "def", Name: "No Link"},
		},
	}

	got := playlistsFrom(page)

	assert.Equal(t, []music.Playlist{
		{ID: "abc", Name: "Happy Hits", URL: "https://open.spotify.com/playlist/abc"},
		{ID: "def", Name: "No Link", URL: "https://open.spotify.com/playlist/def"},
	}, got)
	assert.Nil(t, playlistsFrom(nil))
}

func TestTracksFrom(t *testing.T) {
	track := &spotifyapi.FullTrack{
		SimpleTrack: spotifyapi.SimpleTrack{
			Name:    "Song",
			Artists: []spotifyapi.SimpleArtist{{Name: "Ana"}, {Name: "Bo"}},
		},
	}
	page := &spotifyapi.PlaylistItemPage{
		Items: []spotifyapi.PlaylistItem{
			{Track: spotifyapi.PlaylistItemTrack{Track: track}},
			{Track: spotifyapi.PlaylistItemTrack{}},
		},
	}

	got := tracksFrom(page)

	require.Len(t, got, 1)
	assert.Equal(t, "Song", got[0].Name)
	assert.Equal(t, []string{"Ana", "Bo"}, got[0].Artists)
	assert.Nil(t, tracksFrom(nil))
}

func TestBareID(t *testing.T) {
	assert.Equal(t, "xyz", bareID("spotify:playlist:xyz"))
	assert.Equal(t, "xyz", bareID("xyz"))
}

func TestMissingCredentials(t *testing.T) {
	c := NewCatalog(nil, "", "")

	_, err := c.SearchPlaylists(context.Background(), "happy music", 0)

	assert.ErrorIs(t, err, music.ErrCatalogUnavailable)
}

func TestAuthFailureIsUnavailable(t *testing.T) {
	var tokenCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	}))
	defer srv.Close()

	c := NewCatalog(srv.Client(), "id", "bad-secret", WithTokenURL(srv.URL+"/api/token"))

	_, err := c.SearchPlaylists(context.Background(), "happy music", 0)
	assert.ErrorIs(t, err, music.ErrCatalogUnavailable)

	// no token cached after a failure, so the next call tries again
	_, err = c.FetchPlaylistTracks(context.Background(), "abc", 50)
	assert.ErrorIs(t, err, music.ErrCatalogUnavailable)
	assert.Equal(t, int32(2), tokenCalls.Load())
}

func TestSearchAndTracksAgainstFakeAPI(t *testing.T) {
	var gotQuery, gotLimit, gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"playlists":{"items":[
			{"id":"top1","name":"Top Lima","uri":"spotify:playlist:top1","external_urls":{"spotify":"https://open.spotify.com/playlist/top1"}}
		]}}`)
	})
	mux.HandleFunc("/v1/playlists/top1/tracks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"track":{"type":"track","name":"Cumbia","artists":[{"name":"Los Uno"},{"name":"Dos"}],"external_urls":{"spotify":"https://open.spotify.com/track/t1"}}}
		]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewCatalog(srv.Client(), "id", "secret",
		WithTokenURL(srv.URL+"/api/token"),
		WithAPIURL(srv.URL+"/v1"),
		WithRateLimit(100, 10),
	)

	playlists, err := c.SearchPlaylists(context.Background(), "top songs in Lima", 1)
	require.NoError(t, err)
	assert.Equal(t, "top songs in Lima", gotQuery)
	assert.Equal(t, "1", gotLimit)
	assert.Equal(t, "Bearer tok", gotAuth)
	require.Len(t, playlists, 1)
	assert.Equal(t, music.Playlist{ID: "top1", Name: "Top Lima", URL: "https://open.spotify.com/playlist/top1"}, playlists[0])

	tracks, err := c.FetchPlaylistTracks(context.Background(), "spotify:playlist:top1", 50)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, music.Track{Name: "Cumbia", Artists: []string{"Los Uno", "Dos"}, URL: "https://open.spotify.com/track/t1"}, tracks[0])
}
