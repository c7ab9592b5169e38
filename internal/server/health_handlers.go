package server

import (
	"net/http"
	"time"
)

// HealthStatus represents operational status for the /health endpoint.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Users     int       `json:"users"`
	Playlists int       `json:"playlists"`
	Sessions  int       `json:"sessions"`
}

// handleHealthCheck returns liveness plus store sizes.
func (ms *MusicServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   ms.config.App.Version,
		Users:     ms.users.Len(),
		Playlists: ms.playlists.Len(),
		Sessions:  ms.authService.SessionCount(),
	}

	ms.respondJSON(w, http.StatusOK, health)
}
