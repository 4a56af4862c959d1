package services

import (
	"context"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/auth"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// userService implements user management and the learning language links
type userService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// authorizeSelf allows a user to act on their own account; superusers may
// act on anyone
func authorizeSelf(identity auth.Identity, targetID int, isSuperuser bool) error {
	if identity.ID != targetID && !isSuperuser {
		return apperrors.Forbidden("you can only manage your own account")
	}
	return nil
}

// Get retrieves a single user by ID
func (s *userService) Get(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Update applies a partial update to a user account.
// Only the account owner or a superuser may update it.
func (s *userService) Update(ctx context.Context, identity auth.Identity, targetID int, patch *models.UserPatch) (*models.User, error) {
	caller, err := s.userRepo.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	if err := authorizeSelf(identity, targetID, caller.IsSuperuser); err != nil {
		return nil, err
	}

	if patch.Username != nil {
		trimmed := strings.TrimSpace(*patch.Username)
		if err := validateUsername(trimmed); err != nil {
			return nil, err
		}
		patch.Username = &trimmed
	}
	if patch.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*patch.Email))
		if !emailRegex.MatchString(normalized) {
			return nil, apperrors.Malformed("email", "invalid email format")
		}
		patch.Email = &normalized
	}
	if patch.Password != nil {
		if len(*patch.Password) < 8 {
			return nil, apperrors.Malformed("password", "password must be at least 8 characters long")
		}
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}

	if err := s.userRepo.Update(ctx, targetID, patch); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, targetID)
}

// Delete removes a user account. Deletion is refused while the user still
// owns topics, so vocabulary is never orphaned silently.
func (s *userService) Delete(ctx context.Context, identity auth.Identity, targetID int) error {
	caller, err := s.userRepo.GetByID(ctx, identity.ID)
	if err != nil {
		return err
	}

	if err := authorizeSelf(identity, targetID, caller.IsSuperuser); err != nil {
		return err
	}

	count, err := s.userRepo.CountTopicsOwned(ctx, targetID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("user_in_use", "path", "user still owns topics, delete them first")
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Int("userId", targetID), zap.Int("deletedBy", identity.ID))
	return nil
}

// AddLanguage links a language the calling user is learning
func (s *userService) AddLanguage(ctx context.Context, identity auth.Identity, languageID int) error {
	return s.userRepo.AddLanguage(ctx, identity.ID, languageID)
}

// RemoveLanguage unlinks a language from the calling user
func (s *userService) RemoveLanguage(ctx context.Context, identity auth.Identity, languageID int) error {
	return s.userRepo.RemoveLanguage(ctx, identity.ID, languageID)
}

// Languages lists the languages linked to the calling user
func (s *userService) Languages(ctx context.Context, identity auth.Identity) ([]models.Language, error) {
	return s.userRepo.GetLanguages(ctx, identity.ID)
}
