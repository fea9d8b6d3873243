package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/metrics"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/repository"
	"github.com/newsnotes/internal/validation"
)

const kindUser = "user"

// MsgUsernameTaken is the signup message for an existing username
const MsgUsernameTaken = "A user with that username already exists."

// userService is the concrete implementation of UserService
type userService struct {
	users     repository.UserRepository
	validator *validation.Validator
	cost      int
	log       zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(users repository.UserRepository, validator *validation.Validator, log zerolog.Logger) *userService {
	return &userService{
		users:     users,
		validator: validator,
		cost:      bcrypt.DefaultCost,
		log:       log.With().Str("service", "users").Logger(),
	}
}

// SignUp registers a new account
func (s *userService) SignUp(ctx context.Context, form *models.SignupForm) (*models.User, error) {
	if err := s.validator.ValidateSignup(form); err != nil {
		return nil, invalid(kindUser, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password1), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(form.Username),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, invalid(kindUser, validation.NewFormError("username", MsgUsernameTaken))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.RecordWrite(kindUser, "create")
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")

	return user, nil
}

// Authenticate checks a username/password pair
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Identify resolves a session user id. Unknown ids are anonymous.
func (s *userService) Identify(ctx context.Context, userID string) (access.Identity, error) {
	if userID == "" {
		return access.Anonymous, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return access.Anonymous, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return access.Anonymous, nil
	}
	return access.Identity{UserID: user.ID, Username: user.Username}, nil
}
