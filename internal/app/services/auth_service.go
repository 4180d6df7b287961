package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/app/repositories"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/auth"
)

// AuthService handles registration and credential checks
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type authServiceImpl struct {
	userRepo repositories.UserRepository
	logger   zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a user with a bcrypt-hashed password
func (s *authServiceImpl) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewBadRequestError("username and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Str("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Authenticate returns the user when the password matches. Unknown usernames and
// wrong passwords both yield ErrAuthenticationFailure.
func (s *authServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Spend the same bcrypt work as a real comparison
			auth.CheckPassword(s.fakeHash(), password)
			s.logger.Debug().Str("username", username).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrAuthenticationFailure
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrAuthenticationFailure
	}

	return user, nil
}

func (s *authServiceImpl) fakeHash() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword("coursenotes-placeholder")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
