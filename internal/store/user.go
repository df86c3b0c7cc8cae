package store

import (
	"context"
	"strings"
	"time"

	"github.com/SaiPhaniAnirudh/invoice-manager/types"
)

const usersCollection = "users"

// UserRepository handles persistence for users.
type UserRepository struct {
	users *Collection[types.User]
}

func NewUserRepository(dataDir string) *UserRepository {
	return &UserRepository{users: NewCollection[types.User](dataDir, usersCollection)}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	users, err := r.users.All()
	if err != nil {
		return types.User{}, err
	}
	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

// GetByEmail looks a user up by case-normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	email = NormalizeEmail(email)

	users, err := r.users.All()
	if err != nil {
		return types.User{}, err
	}
	for _, user := range users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

// Create appends a new user. The email uniqueness check runs under the same
// collection lock as the write, so two concurrent registrations with the same
// email cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.Email = NormalizeEmail(user.Email)
	user.CreatedAt = time.Now().UTC()

	err := r.users.Mutate(func(s *Snapshot[types.User]) error {
		for _, existing := range s.Records {
			if existing.Email == user.Email {
				return ErrConflict
			}
		}
		user.ID = s.Allocate()
		s.Records = append(s.Records, user)
		return nil
	})
	if err != nil {
		return types.User{}, err
	}
	return user, nil
}

// Count reports the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	users, err := r.users.All()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// Path returns the snapshot file backing the collection.
func (r *UserRepository) Path() string {
	return r.users.Path()
}

// NormalizeEmail lowercases and trims an email address for comparison and
// storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
