package services

import (
	"context"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// GrammarElementRepository is the interface that wraps methods for grammar_elements table data access
type GrammarElementRepository interface {
	// Method Create inserts a new grammar element; the generated id is written back.
	Create(ctx context.Context, element *models.GrammarElement) error
	// Method GetByID retrieves a grammar element by ID or a NotFound error.
	GetByID(ctx context.Context, id int) (*models.GrammarElement, error)
	// Method ExistsByName checks if a grammar element with such name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Method GetAll retrieves all grammar elements ordered by id.
	GetAll(ctx context.Context) ([]models.GrammarElement, error)
	// Method Update applies a partial update to a grammar element.
	Update(ctx context.Context, id int, patch *models.GrammarElementPatch) error
	// Method Delete deletes a grammar element; restricted while referenced.
	Delete(ctx context.Context, id int) error
}

// grammarElementService implements the grammar category catalog operations
type grammarElementService struct {
	grammarElementRepo GrammarElementRepository
	logger             *zap.Logger
}

// NewGrammarElementService creates a new grammar element service
func NewGrammarElementService(grammarElementRepo GrammarElementRepository, logger *zap.Logger) *grammarElementService {
	return &grammarElementService{
		grammarElementRepo: grammarElementRepo,
		logger:             logger,
	}
}

// Create adds a new grammar element to the catalog
func (s *grammarElementService) Create(ctx context.Context, req *models.GrammarElementRequest) (*models.GrammarElement, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Malformed("name", "grammar element name must not be empty")
	}

	exists, err := s.grammarElementRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("grammar_element_exists", "name", "grammar element with this name already exists")
	}

	element := &models.GrammarElement{Name: name}
	if err := s.grammarElementRepo.Create(ctx, element); err != nil {
		return nil, err
	}

	return element, nil
}

// Get retrieves a grammar element by ID
func (s *grammarElementService) Get(ctx context.Context, id int) (*models.GrammarElement, error) {
	return s.grammarElementRepo.GetByID(ctx, id)
}

// List retrieves all grammar elements
func (s *grammarElementService) List(ctx context.Context) ([]models.GrammarElement, error) {
	return s.grammarElementRepo.GetAll(ctx)
}

// Update renames a grammar element
func (s *grammarElementService) Update(ctx context.Context, id int, patch *models.GrammarElementPatch) (*models.GrammarElement, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperrors.Malformed("name", "grammar element name must not be empty")
		}
		patch.Name = &trimmed
	}

	if err := s.grammarElementRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.grammarElementRepo.GetByID(ctx, id)
}

// Delete removes a grammar element. The store refuses while words still
// reference it.
func (s *grammarElementService) Delete(ctx context.Context, id int) error {
	if err := s.grammarElementRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("grammar element deleted", zap.Int("grammarElementId", id))
	return nil
}
