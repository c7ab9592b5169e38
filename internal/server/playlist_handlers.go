package server

import (
	"net/http"

	"musa/internal/metrics"
	"musa/pkg/models"

	"github.com/sirupsen/logrus"
)

// playlistSummary is one element of the GET /playlist response
type playlistSummary struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Tracks []string `json:"tracks"`
}

// playlistResponse is the POST /playlist response
type playlistResponse struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	OwnerID int      `json:"owner_id"`
	Tracks  []string `json:"tracks"`
}

// handleGetPlaylists returns the caller's playlists with track titles.
func (ms *MusicServer) handleGetPlaylists(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	owned := ms.playlists.ListByOwner(user.ID)
	result := make([]playlistSummary, 0, len(owned))
	for _, playlist := range owned {
		result = append(result, playlistSummary{
			ID:     playlist.ID,
			Name:   playlist.Name,
			Tracks: playlist.TrackTitles(),
		})
	}

	ms.respondJSON(w, http.StatusOK, result)
}

// handleCreatePlaylist builds a playlist owned by the caller.
func (ms *MusicServer) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	req, err := decodeJSONBody[createPlaylistRequest](w, r)
	if err != nil {
		ms.respondWithDomainError(w, r, err)
		return
	}

	tracks, err := toTracks(req.Tracks)
	if err != nil {
		ms.respondWithDomainError(w, r, err)
		return
	}

	builder := models.NewPlaylistBuilder().Owner(user.ID)
	if req.Name != nil {
		builder.Name(*req.Name)
	}
	for _, track := range tracks {
		builder.AddTrack(track)
	}

	playlist := builder.Build()
	ms.playlists.Insert(playlist)
	metrics.PlaylistsCreatedTotal.Inc()

	ms.logger.WithFields(logrus.Fields{
		"playlist_id": playlist.ID,
		"owner_id":    playlist.OwnerID,
		"tracks":      len(playlist.Tracks),
	}).Info("Playlist created")

	ms.respondJSON(w, http.StatusCreated, playlistResponse{
		ID:      playlist.ID,
		Name:    playlist.Name,
		OwnerID: playlist.OwnerID,
		Tracks:  playlist.TrackTitles(),
	})
}
