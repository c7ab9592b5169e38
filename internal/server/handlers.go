package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"musa/pkg/models"

	"github.com/sirupsen/logrus"
)

// handleHome answers with a plain-text banner.
func (ms *MusicServer) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s API is running", ms.config.App.Name)
}

// respondJSON writes v as the JSON response body with the given status
func (ms *MusicServer) respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		ms.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// respondWithError sends {"error": message} and logs the failure
func (ms *MusicServer) respondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string, err error) {
	logEntry := ms.logger.WithFields(logrus.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"status_code": statusCode,
		"message":     message,
	})

	if err != nil {
		logEntry = logEntry.WithError(err)
	}

	if statusCode >= 500 {
		logEntry.Error("Server error")
	} else {
		logEntry.Debug("Client error")
	}

	ms.respondJSON(w, statusCode, map[string]string{"error": message})
}

// respondWithDomainError maps err through the domain error taxonomy.
// Server errors never expose their message.
func (ms *MusicServer) respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := models.HTTPStatus(err)

	message := err.Error()
	if statusCode >= 500 {
		message = "Internal server error"
	}

	ms.respondWithError(w, r, statusCode, message, err)
}
