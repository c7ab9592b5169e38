package models

import (
	"fmt"
	"strings"
)

// DefaultPlaylistName is used when a playlist is built without a name.
const DefaultPlaylistName = "Untitled"

// Playlist is a named, ordered collection of tracks owned by a user.
// OwnerID and ID are zero until set; repository ids start at 1.
type Playlist struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	OwnerID int     `json:"owner_id"`
	Tracks  []Track `json:"tracks"`
}

// SetID assigns the repository id.
func (p *Playlist) SetID(id int) {
	p.ID = id
}

// AddTrack appends a track. Duplicates are allowed.
func (p *Playlist) AddTrack(track Track) {
	p.Tracks = append(p.Tracks, track)
}

// TrackTitles returns the titles in playlist order, never nil.
func (p *Playlist) TrackTitles() []string {
	titles := make([]string, 0, len(p.Tracks))
	for _, track := range p.Tracks {
		titles = append(titles, track.Title)
	}
	return titles
}

func (p *Playlist) String() string {
	return fmt.Sprintf("Playlist(%q, tracks: [%s], owner_id=%d)",
		p.Name, strings.Join(p.TrackTitles(), ", "), p.OwnerID)
}

// PlaylistBuilder accumulates playlist fields before Build.
type PlaylistBuilder struct {
	name    string
	ownerID int
	tracks  []Track
}

// NewPlaylistBuilder returns a builder with the default name and no owner.
func NewPlaylistBuilder() *PlaylistBuilder {
	return &PlaylistBuilder{name: DefaultPlaylistName}
}

func (b *PlaylistBuilder) Name(name string) *PlaylistBuilder {
	b.name = name
	return b
}

func (b *PlaylistBuilder) Owner(ownerID int) *PlaylistBuilder {
	b.ownerID = ownerID
	return b
}

func (b *PlaylistBuilder) AddTrack(track Track) *PlaylistBuilder {
	b.tracks = append(b.tracks, track)
	return b
}

// Build never fails. The returned playlist owns its own copy of the
// accumulated tracks, so later AddTrack calls on the builder do not leak.
func (b *PlaylistBuilder) Build() *Playlist {
	playlist := &Playlist{
		Name:    b.name,
		OwnerID: b.ownerID,
		Tracks:  make([]Track, 0, len(b.tracks)),
	}
	for _, track := range b.tracks {
		playlist.AddTrack(track)
	}
	return playlist
}
