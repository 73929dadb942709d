package music

import (
	"fmt"
	"strings"
)

// Mood is one of the five tags that drive mood-based search phrasing.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodUpbeat  Mood = "upbeat"
	MoodMellow  Mood = "mellow"
	MoodRainy   Mood = "rainy"
	MoodNeutral Mood = "neutral"
)

// Moods lists the accepted tags in prompt order.
var Moods = []Mood{MoodHappy, MoodUpbeat, MoodMellow, MoodRainy, MoodNeutral}

// moodPhrases maps each tag to the playlist search phrase.
var moodPhrases = map[Mood]string{
	MoodHappy:   "happy music",
	MoodUpbeat:  "upbeat music",
	MoodMellow:  "mellow music",
	MoodRainy:   "rainy day music",
	MoodNeutral: "chill music",
}

// SearchPhrase returns the catalog query for m.
func (m Mood) SearchPhrase() (string, error) {
	phrase, ok := moodPhrases[m]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, string(m))
	}
	return phrase, nil
}

// ParseMood accepts a typed answer, ignoring case and surrounding space.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, err := m.SearchPhrase(); err != nil {
		return "", err
	}
	return m, nil
}

// QueryKind tags a Query.
type QueryKind int

const (
	ByMood QueryKind = iota
	ByLocation
)

func (k QueryKind) String() string {
	switch k {
	case ByMood:
		return "mood"
	case ByLocation:
		return "location"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// Query is a recommendation request. Mood is set for ByMood, Location for ByLocation.
type Query struct {
	Kind     QueryKind
	Mood     Mood   `validate:"omitempty,oneof=happy upbeat mellow rainy neutral"`
	Location string
}

// MoodQuery builds a ByMood query.
func MoodQuery(m Mood) Query {
	return Query{Kind: ByMood, Mood: m}
}

// LocationQuery builds a ByLocation query.
func LocationQuery(location string) Query {
	return Query{Kind: ByLocation, Location: location}
}

// Item is one presentable recommendation.
type Item struct {
	Title string `json:"title"`
	// Attribution is the artist names joined by ", "; empty for playlists.
	Attribution string `json:"attribution,omitempty"`
	Link        string `json:"link"`
}

// Result is an ordered list of items. For location queries PlaylistID names
// the playlist the tracks came from.
type Result struct {
	Items      []Item `json:"items"`
	PlaylistID string `json:"playlistId,omitempty"`
}

const playlistShareBase = "https://open.spotify.com/playlist/"

// PlaylistURL turns a playlist URI ("spotify:playlist:abc") or bare id into a shareable link.
func PlaylistURL(playlistID string) string {
	id := playlistID
	if i := strings.LastIndex(id, ":"); i >= 0 {
		id = id[i+1:]
	}
	return playlistShareBase + id
}
