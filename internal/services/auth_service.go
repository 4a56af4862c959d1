package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/auth"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter carries the username, email and password hash; the
	// generated id is written back into it.
	//
	// If the username or email is already taken, a Conflict error is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// If no user with such ID exists, a NotFound error is returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetByLogin retrieves a user by username or email.
	//
	// If no user matches, sql.ErrNoRows is returned together with "nil" value.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method GetAll retrieves all users ordered by id.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method Update applies a partial update; patch.Password must already be hashed.
	Update(ctx context.Context, id int, patch *models.UserPatch) error
	// Method Delete deletes a user by ID.
	Delete(ctx context.Context, id int) error
	// Method CountTopicsOwned returns the number of topics owned by a user.
	CountTopicsOwned(ctx context.Context, userID int) (int, error)
	// Method AddLanguage links a language the user is learning.
	AddLanguage(ctx context.Context, userID, languageID int) error
	// Method RemoveLanguage unlinks a language the user is learning.
	RemoveLanguage(ctx context.Context, userID, languageID int) error
	// Method GetLanguages returns the languages linked to a user.
	GetLanguages(ctx context.Context, userID int) ([]models.Language, error)
}

// authService implements registration, login and token refresh
type authService struct {
	userRepo       UserRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account and returns the created user
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	normalizedUsername := strings.TrimSpace(req.Username)

	if err := validateUsername(normalizedUsername); err != nil {
		return nil, err
	}
	if !emailRegex.MatchString(normalizedEmail) {
		return nil, apperrors.Malformed("email", "invalid email format")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.Malformed("password", "password must be at least 8 characters long")
	}

	// Pre-check uniqueness for a precise error; the unique constraints
	// still resolve concurrent registration races in the store
	usernameExists, err := s.userRepo.ExistsByUsername(ctx, normalizedUsername)
	if err != nil {
		return nil, err
	}
	emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return nil, err
	}
	if usernameExists && emailExists {
		return nil, apperrors.Conflict("username_and_email_taken", "body", "username and email are already taken")
	}
	if usernameExists {
		return nil, apperrors.Conflict("username_taken", "username", "user with this username already exists")
	}
	if emailExists {
		return nil, apperrors.Conflict("email_taken", "email", "user with this email already exists")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     normalizedUsername,
		Email:        normalizedEmail,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Re-read to pick up the store-generated flags and timestamps
	created, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		s.logger.Warn("failed to reload created user", zap.Int("userId", user.ID), zap.Error(err))
		return user, nil
	}

	return created, nil
}

// Login authenticates a user and returns a token pair.
// Unknown user and wrong password produce the same error, failing closed.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" || req.Password == "" {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		// Only a missing user counts as bad credentials
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.issueTokens(user)
}

// Refresh validates a refresh token, re-resolves the user from storage
// and issues a fresh token pair. Refresh tokens are not stored server-side,
// so validity is purely signature plus expiry.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	identity, err := s.tokenGenerator.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("refresh token is expired")
		}
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, identity.ID)
	if err != nil {
		if apperrors.As(err) != nil {
			return nil, apperrors.Unauthorized("user no longer exists")
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*models.TokenPair, error) {
	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// validateUsername enforces the 5-50 character username constraint
func validateUsername(username string) error {
	if len(username) < 5 || len(username) > 50 {
		return apperrors.Malformed("username", "username must be between 5 and 50 characters long")
	}
	return nil
}
