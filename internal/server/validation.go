package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"musa/pkg/models"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var errInvalidJSON = models.NewValidationError("Invalid or missing JSON")

var validate = validator.New(validator.WithRequiredStructEnabled())

// registerRequest is the POST /register body. Presence checks belong to
// the user builder so its messages reach the client unchanged.
type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
	Passport  string `json:"passport"`
}

// loginRequest is the POST /login body
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// trackRequest is one element of the POST /playlist tracks array
type trackRequest struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"`
}

// createPlaylistRequest is the POST /playlist body. A nil Name means the
// field was omitted or null.
type createPlaylistRequest struct {
	Name   *string         `json:"name"`
	Tracks []*trackRequest `json:"tracks"`
}

// decodeJSONBody parses the request body as a single JSON object. Missing,
// malformed, null and non-object bodies are all rejected the same way, as
// is anything but whitespace after the object.
func decodeJSONBody[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	var body *T

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&body); err != nil || body == nil {
		return nil, errInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errInvalidJSON
	}
	return body, nil
}

// validateLogin applies the login presence checks
func validateLogin(req *loginRequest) error {
	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return models.NewValidationError("Email and password required")
		}
		return err
	}
	return nil
}

// toTracks converts request tracks, rejecting null entries
func toTracks(reqs []*trackRequest) ([]models.Track, error) {
	tracks := make([]models.Track, 0, len(reqs))
	for _, req := range reqs {
		if req == nil {
			return nil, models.NewValidationError("each track must be an object")
		}
		tracks = append(tracks, models.NewTrack(req.Title, req.Artist, req.Duration))
	}
	return tracks, nil
}
