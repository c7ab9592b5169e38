package models

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. The raw password is never stored.
type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Address      string `json:"-"`
	Passport     string `json:"-"`
	IsVerified   bool   `json:"is_verified"`
}

// SetID assigns the repository id.
func (u *User) SetID(id int) {
	u.ID = id
}

// CheckPassword reports whether candidate matches the stored hash.
func (u *User) CheckPassword(candidate string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

func (u *User) String() string {
	return fmt.Sprintf("User(%s %s, email=%s, verified=%t)", u.FirstName, u.LastName, u.Email, u.IsVerified)
}

// UserBuilder collects registration fields. Setters may be called in any
// order; the last write wins. All checks happen in Build.
type UserBuilder struct {
	firstName string
	lastName  string
	address   string
	passport  string
	email     string
	password  string
	hashCost  int
}

// NewUserBuilder returns an empty builder using bcrypt.DefaultCost.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{hashCost: bcrypt.DefaultCost}
}

func (b *UserBuilder) FirstName(firstName string) *UserBuilder {
	b.firstName = firstName
	return b
}

func (b *UserBuilder) LastName(lastName string) *UserBuilder {
	b.lastName = lastName
	return b
}

func (b *UserBuilder) Address(address string) *UserBuilder {
	b.address = address
	return b
}

func (b *UserBuilder) Passport(passport string) *UserBuilder {
	b.passport = passport
	return b
}

func (b *UserBuilder) Email(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) Password(password string) *UserBuilder {
	b.password = password
	return b
}

// HashCost overrides the bcrypt cost factor. Out of range values fall
// back to bcrypt.DefaultCost.
func (b *UserBuilder) HashCost(cost int) *UserBuilder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b.hashCost = cost
	return b
}

// Build validates the collected fields and returns a user with a hashed
// password. The builder's copy of the raw password is cleared on success.
func (b *UserBuilder) Build() (*User, error) {
	if b.firstName == "" || b.lastName == "" {
		return nil, NewValidationError("first and last name are required")
	}
	if b.email == "" {
		return nil, NewValidationError("email is required")
	}
	if b.password == "" {
		return nil, NewValidationError("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(b.password), b.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, NewValidationError("password is too long")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	b.password = ""

	return &User{
		FirstName:    b.firstName,
		LastName:     b.lastName,
		Email:        b.email,
		PasswordHash: string(hash),
		Address:      b.address,
		Passport:     b.passport,
		IsVerified:   b.address != "" && b.passport != "",
	}, nil
}
