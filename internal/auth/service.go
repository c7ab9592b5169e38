package auth

import (
	"musa/internal/metrics"
	"musa/internal/store"
	"musa/pkg/models"

	"github.com/sirupsen/logrus"
)

// Service provides registration, login and token authentication
type Service struct {
	users    *store.UserStore
	sessions *SessionStore
	logger   *logrus.Logger
}

// NewService creates a new authentication service
func NewService(users *store.UserStore, sessions *SessionStore, logger *logrus.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Register builds the user and stores it. Nothing is stored when the
// builder rejects its input.
func (s *Service) Register(builder *models.UserBuilder) (*models.User, error) {
	user, err := builder.Build()
	if err != nil {
		return nil, err
	}

	s.users.Insert(user)
	metrics.UsersRegisteredTotal.Inc()

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"verified": user.IsVerified,
	}).Info("User registered")

	return user, nil
}

// Login checks credentials and issues a session token.
func (s *Service) Login(email, password string) (string, *models.User, error) {
	user, ok := s.users.FindByEmail(email)
	if !ok {
		metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		return "", nil, models.NewNotFoundError("User not found")
	}

	if !user.CheckPassword(password) {
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		s.logger.WithField("user_id", user.ID).Warn("Failed login attempt")
		return "", nil, models.NewAuthenticationError("Invalid password")
	}

	token := s.sessions.Issue(user.ID)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.ActiveSessions.Set(float64(s.sessions.Count()))

	s.logger.WithField("user_id", user.ID).Info("User logged in successfully")
	return token, user, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(token string) (*models.User, error) {
	userID, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, models.NewAuthenticationError("Unauthorized")
	}

	user, ok := s.users.Get(userID)
	if !ok {
		return nil, models.NewAuthenticationError("Unauthorized")
	}
	return user, nil
}

// SessionCount returns the number of issued tokens
func (s *Service) SessionCount() int {
	return s.sessions.Count()
}
