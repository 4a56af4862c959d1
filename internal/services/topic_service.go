package services

import (
	"context"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/auth"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// TopicRepository is the interface that wraps methods for topics table data access
type TopicRepository interface {
	// Method Create inserts a new topic; the generated id is written back.
	Create(ctx context.Context, topic *models.Topic) error
	// Method GetByID retrieves a topic by ID or a NotFound error.
	GetByID(ctx context.Context, id int) (*models.Topic, error)
	// Method ExistsByNameForUser checks per-user name uniqueness;
	// excludeID skips the topic being updated, pass 0 on create.
	ExistsByNameForUser(ctx context.Context, name string, userID, excludeID int) (bool, error)
	// Method GetAll retrieves all topics ordered by id.
	GetAll(ctx context.Context) ([]models.Topic, error)
	// Method GetAllForUser retrieves all topics owned by a user.
	GetAllForUser(ctx context.Context, userID int) ([]models.Topic, error)
	// Method Update applies a partial update to a topic.
	Update(ctx context.Context, id int, patch *models.TopicPatch) error
	// Method DeleteCascade deletes a topic with its linked words and associations.
	DeleteCascade(ctx context.Context, id int) error
}

// topicService implements topic operations with caller ownership enforced
// on every mutation
type topicService struct {
	topicRepo    TopicRepository
	languageRepo LanguageRepository
	logger       *zap.Logger
}

// NewTopicService creates a new topic service
func NewTopicService(topicRepo TopicRepository, languageRepo LanguageRepository, logger *zap.Logger) *topicService {
	return &topicService{
		topicRepo:    topicRepo,
		languageRepo: languageRepo,
		logger:       logger,
	}
}

// Create adds a topic owned by the calling user.
// Topic names are unique per owner; different users may reuse a name.
func (s *topicService) Create(ctx context.Context, identity auth.Identity, req *models.TopicRequest) (*models.Topic, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Malformed("name", "topic name must not be empty")
	}

	if _, err := s.languageRepo.GetByID(ctx, req.LanguageID); err != nil {
		return nil, err
	}

	exists, err := s.topicRepo.ExistsByNameForUser(ctx, name, identity.ID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("topic_duplicate", "name", "you already have a topic with this name")
	}

	topic := &models.Topic{
		Name:       name,
		LanguageID: req.LanguageID,
		UserID:     identity.ID,
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	return topic, nil
}

// Get retrieves a topic by ID
func (s *topicService) Get(ctx context.Context, id int) (*models.Topic, error) {
	return s.topicRepo.GetByID(ctx, id)
}

// List retrieves all topics
func (s *topicService) List(ctx context.Context) ([]models.Topic, error) {
	return s.topicRepo.GetAll(ctx)
}

// ListForUser retrieves the topics owned by the calling user
func (s *topicService) ListForUser(ctx context.Context, identity auth.Identity) ([]models.Topic, error) {
	return s.topicRepo.GetAllForUser(ctx, identity.ID)
}

// Update applies a partial update to a topic owned by the caller
func (s *topicService) Update(ctx context.Context, identity auth.Identity, id int, patch *models.TopicPatch) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(identity.ID, topic.UserID, "you can only modify your own topics"); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperrors.Malformed("name", "topic name must not be empty")
		}
		patch.Name = &trimmed

		exists, err := s.topicRepo.ExistsByNameForUser(ctx, trimmed, identity.ID, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Conflict("topic_duplicate", "name", "you already have a topic with this name")
		}
	}
	if patch.LanguageID != nil {
		if _, err := s.languageRepo.GetByID(ctx, *patch.LanguageID); err != nil {
			return nil, err
		}
	}

	if err := s.topicRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.topicRepo.GetByID(ctx, id)
}

// Delete removes a topic owned by the caller together with every word
// linked through it
func (s *topicService) Delete(ctx context.Context, identity auth.Identity, id int) error {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(identity.ID, topic.UserID, "you can only delete your own topics"); err != nil {
		return err
	}

	if err := s.topicRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	s.logger.Info("topic deleted with its words",
		zap.Int("topicId", id),
		zap.Int("userId", identity.ID),
	)
	return nil
}
