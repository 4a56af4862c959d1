package services

import (
	"context"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// LanguageRepository is the interface that wraps methods for languages table data access
type LanguageRepository interface {
	// Method Create inserts a new language; the generated id is written back.
	Create(ctx context.Context, language *models.Language) error
	// Method GetByID retrieves a language by ID or a NotFound error.
	GetByID(ctx context.Context, id int) (*models.Language, error)
	// Method ExistsByName checks if a language with such name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Method GetAll retrieves all languages ordered by id.
	GetAll(ctx context.Context) ([]models.Language, error)
	// Method Update applies a partial update to a language.
	Update(ctx context.Context, id int, patch *models.LanguagePatch) error
	// Method Delete deletes a language; restricted while referenced.
	Delete(ctx context.Context, id int) error
}

// languageService implements the language catalog operations
type languageService struct {
	languageRepo LanguageRepository
	logger       *zap.Logger
}

// NewLanguageService creates a new language service
func NewLanguageService(languageRepo LanguageRepository, logger *zap.Logger) *languageService {
	return &languageService{
		languageRepo: languageRepo,
		logger:       logger,
	}
}

// Create adds a new language to the catalog
func (s *languageService) Create(ctx context.Context, req *models.LanguageRequest) (*models.Language, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Malformed("name", "language name must not be empty")
	}

	exists, err := s.languageRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("language_exists", "name", "language with this name already exists")
	}

	language := &models.Language{Name: name}
	if err := s.languageRepo.Create(ctx, language); err != nil {
		return nil, err
	}

	return language, nil
}

// Get retrieves a language by ID
func (s *languageService) Get(ctx context.Context, id int) (*models.Language, error) {
	return s.languageRepo.GetByID(ctx, id)
}

// List retrieves all languages
func (s *languageService) List(ctx context.Context) ([]models.Language, error) {
	return s.languageRepo.GetAll(ctx)
}

// Update renames a language
func (s *languageService) Update(ctx context.Context, id int, patch *models.LanguagePatch) (*models.Language, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperrors.Malformed("name", "language name must not be empty")
		}
		patch.Name = &trimmed
	}

	if err := s.languageRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.languageRepo.GetByID(ctx, id)
}

// Delete removes a language. The store refuses while topics or user links
// still reference it.
func (s *languageService) Delete(ctx context.Context, id int) error {
	if err := s.languageRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("language deleted", zap.Int("languageId", id))
	return nil
}
