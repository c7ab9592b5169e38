package models

import "fmt"

// Track describes a single song. It carries no identity and is copied by
// value into every playlist that references it.
type Track struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"` // in seconds
}

// NewTrack creates a track from caller supplied data.
func NewTrack(title, artist string, duration int) Track {
	return Track{
		Title:    title,
		Artist:   artist,
		Duration: duration,
	}
}

func (t Track) String() string {
	return fmt.Sprintf("Track('%s' by %s, %ds)", t.Title, t.Artist, t.Duration)
}
