package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/influence-hq/influence/internal/database"
	"github.com/influence-hq/influence/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned by Signup when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned by Login on a bad email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service handles account signup and login
type Service struct {
	userRepo *database.UserRepository
}

// NewService creates a new auth service
func NewService(db *database.DB) *Service {
	return &Service{
		userRepo: database.NewUserRepository(db),
	}
}

// Signup registers a new account. The password is stored as a bcrypt hash.
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (*models.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("full_name, email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User signed up")
	return user, nil
}

// Login verifies an email/password pair against the stored bcrypt hash.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("email", email).Msg("Password mismatch")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
