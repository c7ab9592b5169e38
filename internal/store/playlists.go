package store

import "musa/pkg/models"

// PlaylistStore keeps playlists of all users.
type PlaylistStore struct {
	*Repository[*models.Playlist]
}

// NewPlaylistStore creates an empty playlist store.
func NewPlaylistStore() *PlaylistStore {
	return &PlaylistStore{Repository: NewRepository[*models.Playlist]()}
}

// ListByOwner returns the playlists owned by ownerID in creation order.
func (s *PlaylistStore) ListByOwner(ownerID int) []*models.Playlist {
	return s.ListWhere(func(p *models.Playlist) bool {
		return p.OwnerID == ownerID
	})
}
