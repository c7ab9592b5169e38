package store

import "musa/pkg/models"

// UserStore keeps registered users.
type UserStore struct {
	*Repository[*models.User]
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{Repository: NewRepository[*models.User]()}
}

// FindByEmail returns the earliest registered user with the given email.
// Uniqueness is not enforced at registration.
func (s *UserStore) FindByEmail(email string) (*models.User, bool) {
	matches := s.ListWhere(func(u *models.User) bool {
		return u.Email == email
	})
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}
