package server

import (
	"context"
	"net/http"
	"strings"

	"musa/pkg/models"
)

type contextKey string

const userContextKey contextKey = "user"

// authMiddleware resolves the bearer token and rejects unauthenticated requests
func (ms *MusicServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			ms.respondWithError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		user, err := ms.authService.Authenticate(token)
		if err != nil {
			ms.respondWithDomainError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other scheme counts as no token.
func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}
	token, _, _ = strings.Cut(token, " ")
	return token, token != ""
}

// currentUser returns the user stored by authMiddleware
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

// handleRegister creates a new account
func (ms *MusicServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSONBody[registerRequest](w, r)
	if err != nil {
		ms.respondWithDomainError(w, r, err)
		return
	}

	builder := models.NewUserBuilder().
		HashCost(ms.config.Auth.BcryptCost).
		FirstName(req.FirstName).
		LastName(req.LastName).
		Email(req.Email).
		Password(req.Password).
		Address(req.Address).
		Passport(req.Passport)

	user, err := ms.authService.Register(builder)
	if err != nil {
		ms.respondWithDomainError(w, r, err)
		return
	}

	ms.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	})
}

// handleLogin exchanges email and password for a session token
func (ms *MusicServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSONBody[loginRequest](w, r)
	if err != nil {
		ms.respondWithDomainError(w, r, err)
		return
	}

	if err := validateLogin(req); err != nil {
		ms.respondWithDomainError(w, r, err)
		return
	}

	token, user, err := ms.authService.Login(req.Email, req.Password)
	if err != nil {
		ms.respondWithDomainError(w, r, err)
		return
	}

	ms.respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"user_id": user.ID,
	})
}
