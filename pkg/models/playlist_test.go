package models

import (
	"fmt"
	"testing"
)

func TestPlaylistBuilderDefaults(t *testing.T) {
	playlist := NewPlaylistBuilder().Build()

	if playlist.Name != DefaultPlaylistName {
		t.Errorf("Expected default name %q, got %q", DefaultPlaylistName, playlist.Name)
	}
	if playlist.OwnerID != 0 {
		t.Errorf("Expected unset owner, got %d", playlist.OwnerID)
	}
	if len(playlist.Tracks) != 0 {
		t.Errorf("Expected no tracks, got %d", len(playlist.Tracks))
	}
}

func TestPlaylistBuilderCreatesEmptyPlaylist(t *testing.T) {
	playlist := NewPlaylistBuilder().Name("Favorites").Build()

	if playlist.Name != "Favorites" {
		t.Errorf("Expected name Favorites, got %s", playlist.Name)
	}
	if len(playlist.Tracks) != 0 {
		t.Errorf("Expected zero tracks, got %d", len(playlist.Tracks))
	}
}

func TestPlaylistAddTrackPreservesOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10} {
		t.Run(fmt.Sprintf("%d tracks", n), func(t *testing.T) {
			playlist := NewPlaylistBuilder().Name("Favorites").Build()

			for i := 0; i < n; i++ {
				playlist.AddTrack(NewTrack(fmt.Sprintf("Song%d", i), "Artist", 180+i))
			}

			if len(playlist.Tracks) != n {
				t.Fatalf("Expected %d tracks, got %d", n, len(playlist.Tracks))
			}
			for i, track := range playlist.Tracks {
				if want := fmt.Sprintf("Song%d", i); track.Title != want {
					t.Errorf("Track %d = %s, want %s", i, track.Title, want)
				}
			}
		})
	}
}

func TestPlaylistAllowsDuplicates(t *testing.T) {
	track := NewTrack("Song", "Artist", 120)
	playlist := NewPlaylistBuilder().AddTrack(track).AddTrack(track).Build()
	playlist.AddTrack(track)

	if len(playlist.Tracks) != 3 {
		t.Errorf("Expected 3 tracks, got %d", len(playlist.Tracks))
	}
}

func TestPlaylistBuilderCopiesTracks(t *testing.T) {
	builder := NewPlaylistBuilder().
		Name("Mix").
		Owner(7).
		AddTrack(NewTrack("Song1", "Artist1", 200)).
		AddTrack(NewTrack("Song2", "Artist2", 180))

	playlist := builder.Build()
	builder.AddTrack(NewTrack("Song3", "Artist3", 100))

	if playlist.OwnerID != 7 {
		t.Errorf("Expected owner 7, got %d", playlist.OwnerID)
	}
	titles := playlist.TrackTitles()
	if len(titles) != 2 || titles[0] != "Song1" || titles[1] != "Song2" {
		t.Errorf("Unexpected titles %v", titles)
	}
}

func TestPlaylistTrackTitlesNeverNil(t *testing.T) {
	playlist := &Playlist{Name: "Empty"}
	if titles := playlist.TrackTitles(); titles == nil {
		t.Error("Expected non-nil titles slice")
	}
}
