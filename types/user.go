package types

import "time"

// User represents an account in the system.
// Accounts are created at registration and never mutated or deleted afterwards.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id"`

	// Name is the user's display or full name.
	Name string `json:"name"`

	// Email is the user's email address, stored lowercased.
	// It is unique across all accounts.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is persisted with the record but stripped from API responses.
	PasswordHash string `json:"passwordHash"`

	// ContactNumber is the user's phone number.
	ContactNumber string `json:"contactNumber"`

	// Address is the user's postal address.
	Address string `json:"address"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// GetID implements store.Record.
func (u User) GetID() int { return u.ID }

// PublicUser is the API projection of a User, without credential material.
type PublicUser struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Public returns the user without the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		CreatedAt:     u.CreatedAt,
	}
}
