package services

import (
	"context"
	"errors"
	"log"

	"github.com/SaiPhaniAnirudh/invoice-manager/internal/store"
	"github.com/SaiPhaniAnirudh/invoice-manager/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login attempt. The same
// error covers an unknown email and a wrong password, so a caller cannot tell
// which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Demo account seeded into an empty user collection on first run.
const (
	seedUserName     = "Demo User"
	seedUserEmail    = "demo@example.com"
	seedUserPassword = "demo1234"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Count(ctx context.Context) (int, error)
}

// UserService encapsulates registration and credential verification.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a new account with a bcrypt-hashed password. The raw
// password is never stored. Returns store.ErrConflict when another account
// already uses the same case-normalized email.
func (s *UserService) Register(ctx context.Context, name, email, password, contactNumber, address string) (types.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, store.ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Name:          name,
		Email:         email,
		PasswordHash:  string(hashed),
		ContactNumber: contactNumber,
		Address:       address,
	})
}

// Authenticate verifies an email/password pair. Lookup failure and hash
// mismatch both surface as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureSeedUser registers the demo account when the user collection is
// empty, so a fresh data directory always has one working login.
func (s *UserService) EnsureSeedUser(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := s.Register(ctx, seedUserName, seedUserEmail, seedUserPassword, "", ""); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil
		}
		return err
	}
	log.Printf("seeded demo account %s", seedUserEmail)
	return nil
}
