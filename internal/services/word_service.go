package services

import (
	"context"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/auth"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// WordRepository is the interface that wraps methods for words table data access
type WordRepository interface {
	// Method GetByID retrieves a word by ID or a NotFound error.
	GetByID(ctx context.Context, id int) (*models.Word, error)
	// Method GetAll retrieves all words ordered by id.
	GetAll(ctx context.Context) ([]models.Word, error)
	// Method GetAllForTopic retrieves the words linked to a topic.
	GetAllForTopic(ctx context.Context, topicID int) ([]models.Word, error)
	// Method ExistsInTopic checks whether a learnt word is already linked
	// to the topic; excludeWordID skips the word being updated, pass 0 on create.
	ExistsInTopic(ctx context.Context, topicID int, learntWord string, excludeWordID int) (bool, error)
	// Method DuplicateInLinkedTopics checks whether renaming the word would
	// collide inside any topic it is linked to.
	DuplicateInLinkedTopics(ctx context.Context, wordID int, learntWord string) (bool, error)
	// Method OwnedBy checks whether any topic linked to the word belongs to the user.
	OwnedBy(ctx context.Context, wordID, userID int) (bool, error)
	// Method CreateInTopic inserts the word and its topic association atomically.
	CreateInTopic(ctx context.Context, topicID int, word *models.Word) error
	// Method Link associates an existing word with a topic.
	Link(ctx context.Context, topicID, wordID int) error
	// Method Update applies a partial update to a word.
	Update(ctx context.Context, id int, patch *models.WordPatch) error
	// Method DeleteCascade deletes a word and every association referencing it.
	DeleteCascade(ctx context.Context, id int) error
}

// wordService implements vocabulary operations. Words are reached through
// topics, so ownership checks go through the linked topics.
type wordService struct {
	wordRepo  WordRepository
	topicRepo TopicRepository
	logger    *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo WordRepository, topicRepo TopicRepository, logger *zap.Logger) *wordService {
	return &wordService{
		wordRepo:  wordRepo,
		topicRepo: topicRepo,
		logger:    logger,
	}
}

// CreateInTopic adds a word to a topic owned by the caller.
// A learnt word may appear only once within a topic.
func (s *wordService) CreateInTopic(ctx context.Context, identity auth.Identity, topicID int, req *models.WordRequest) (*models.Word, error) {
	learntWord := strings.TrimSpace(req.LearntWord)
	if learntWord == "" {
		return nil, apperrors.Malformed("learntWord", "learnt word must not be empty")
	}

	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(identity.ID, topic.UserID, "you can only add words to your own topics"); err != nil {
		return nil, err
	}

	exists, err := s.wordRepo.ExistsInTopic(ctx, topicID, learntWord, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("word_duplicate", "learntWord", "this word is already present in the topic")
	}

	word := &models.Word{
		LearntWord:       learntWord,
		Definition:       req.Definition,
		Example:          req.Example,
		GrammarElementID: req.GrammarElementID,
	}
	if err := s.wordRepo.CreateInTopic(ctx, topicID, word); err != nil {
		return nil, err
	}

	return word, nil
}

// Link associates an existing word with another topic owned by the caller
func (s *wordService) Link(ctx context.Context, identity auth.Identity, topicID, wordID int) error {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(identity.ID, topic.UserID, "you can only link words to your own topics"); err != nil {
		return err
	}

	word, err := s.wordRepo.GetByID(ctx, wordID)
	if err != nil {
		return err
	}

	exists, err := s.wordRepo.ExistsInTopic(ctx, topicID, word.LearntWord, wordID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Conflict("word_duplicate", "learntWord", "this word is already present in the topic")
	}

	return s.wordRepo.Link(ctx, topicID, wordID)
}

// Get retrieves a word by ID
func (s *wordService) Get(ctx context.Context, id int) (*models.Word, error) {
	return s.wordRepo.GetByID(ctx, id)
}

// List retrieves all words
func (s *wordService) List(ctx context.Context) ([]models.Word, error) {
	return s.wordRepo.GetAll(ctx)
}

// ListForTopic retrieves the words linked to a topic owned by the caller
func (s *wordService) ListForTopic(ctx context.Context, identity auth.Identity, topicID int) ([]models.Word, error) {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(identity.ID, topic.UserID, "you can only list words of your own topics"); err != nil {
		return nil, err
	}

	return s.wordRepo.GetAllForTopic(ctx, topicID)
}

// Update applies a partial update to a word linked to the caller's topics.
// Renaming is refused when it would collide in any topic the word is in.
func (s *wordService) Update(ctx context.Context, identity auth.Identity, id int, patch *models.WordPatch) (*models.Word, error) {
	if _, err := s.wordRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	owned, err := s.wordRepo.OwnedBy(ctx, id, identity.ID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperrors.Forbidden("you can only modify words in your own topics")
	}

	if patch.LearntWord != nil {
		trimmed := strings.TrimSpace(*patch.LearntWord)
		if trimmed == "" {
			return nil, apperrors.Malformed("learntWord", "learnt word must not be empty")
		}
		patch.LearntWord = &trimmed

		duplicate, err := s.wordRepo.DuplicateInLinkedTopics(ctx, id, trimmed)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, apperrors.Conflict("word_duplicate", "learntWord", "another word with this spelling already exists in a linked topic")
		}
	}

	if err := s.wordRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.wordRepo.GetByID(ctx, id)
}

// Delete removes a word from every topic it is linked to
func (s *wordService) Delete(ctx context.Context, identity auth.Identity, id int) error {
	if _, err := s.wordRepo.GetByID(ctx, id); err != nil {
		return err
	}

	owned, err := s.wordRepo.OwnedBy(ctx, id, identity.ID)
	if err != nil {
		return err
	}
	if !owned {
		return apperrors.Forbidden("you can only delete words in your own topics")
	}

	if err := s.wordRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	s.logger.Info("word deleted", zap.Int("wordId", id), zap.Int("userId", identity.ID))
	return nil
}
