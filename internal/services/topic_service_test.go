package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/auth"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// mockTopicRepository is a mock implementation of TopicRepository
type mockTopicRepository struct {
	topic      *models.Topic
	topics     []models.Topic
	nameExists bool
	err        error
	deleteErr  error
	lastPatch  *models.TopicPatch
	deletedID  int
}

func (m *mockTopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	if m.err != nil {
		return m.err
	}
	topic.ID = 1
	return nil
}

func (m *mockTopicRepository) GetByID(ctx context.Context, id int) (*models.Topic, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.topic == nil {
		return nil, apperrors.NotFound("topic", id)
	}
	return m.topic, nil
}

func (m *mockTopicRepository) ExistsByNameForUser(ctx context.Context, name string, userID, excludeID int) (bool, error) {
	return m.nameExists, nil
}

func (m *mockTopicRepository) GetAll(ctx context.Context) ([]models.Topic, error) {
	return m.topics, m.err
}

func (m *mockTopicRepository) GetAllForUser(ctx context.Context, userID int) ([]models.Topic, error) {
	return m.topics, m.err
}

func (m *mockTopicRepository) Update(ctx context.Context, id int, patch *models.TopicPatch) error {
	m.lastPatch = patch
	return m.err
}

func (m *mockTopicRepository) DeleteCascade(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

// mockLanguageRepository is a mock implementation of LanguageRepository
type mockLanguageRepository struct {
	language   *models.Language
	languages  []models.Language
	nameExists bool
	err        error
}

func (m *mockLanguageRepository) Create(ctx context.Context, language *models.Language) error {
	if m.err != nil {
		return m.err
	}
	language.ID = 1
	return nil
}

func (m *mockLanguageRepository) GetByID(ctx context.Context, id int) (*models.Language, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.language == nil {
		return nil, apperrors.NotFound("language", id)
	}
	return m.language, nil
}

func (m *mockLanguageRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.nameExists, nil
}

func (m *mockLanguageRepository) GetAll(ctx context.Context) ([]models.Language, error) {
	return m.languages, m.err
}

func (m *mockLanguageRepository) Update(ctx context.Context, id int, patch *models.LanguagePatch) error {
	return m.err
}

func (m *mockLanguageRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

func TestTopicService_Create(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	identity := auth.Identity{ID: 2, Username: "learner"}

	tests := []struct {
		name          string
		req           *models.TopicRequest
		topicRepo     *mockTopicRepository
		languageRepo  *mockLanguageRepository
		expectedError bool
		expectedKind  apperrors.Kind
	}{
		{
			name:          "success",
			req:           &models.TopicRequest{Name: "Food", LanguageID: 1},
			topicRepo:     &mockTopicRepository{},
			languageRepo:  &mockLanguageRepository{language: &models.Language{ID: 1, Name: "German"}},
			expectedError: false,
		},
		{
			name:          "empty name",
			req:           &models.TopicRequest{Name: "   ", LanguageID: 1},
			topicRepo:     &mockTopicRepository{},
			languageRepo:  &mockLanguageRepository{language: &models.Language{ID: 1}},
			expectedError: true,
			expectedKind:  apperrors.KindMalformed,
		},
		{
			name:          "language does not exist",
			req:           &models.TopicRequest{Name: "Food", LanguageID: 99},
			topicRepo:     &mockTopicRepository{},
			languageRepo:  &mockLanguageRepository{},
			expectedError: true,
			expectedKind:  apperrors.KindNotFound,
		},
		{
			name:          "name already used by this user",
			req:           &models.TopicRequest{Name: "Food", LanguageID: 1},
			topicRepo:     &mockTopicRepository{nameExists: true},
			languageRepo:  &mockLanguageRepository{language: &models.Language{ID: 1}},
			expectedError: true,
			expectedKind:  apperrors.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTopicService(tt.topicRepo, tt.languageRepo, logger)

			topic, err := svc.Create(context.Background(), identity, tt.req)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, topic)
				appErr := apperrors.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.expectedKind, appErr.Kind)
			} else {
				require.NoError(t, err)
				require.NotNil(t, topic)
				// The caller becomes the owner
				assert.Equal(t, 2, topic.UserID)
				assert.Equal(t, "Food", topic.Name)
			}
		})
	}
}

func TestTopicService_Update_Ownership(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	name := "Renamed"

	t.Run("owner can update", func(t *testing.T) {
		topicRepo := &mockTopicRepository{topic: &models.Topic{ID: 1, Name: "Food", LanguageID: 1, UserID: 2}}
		svc := NewTopicService(topicRepo, &mockLanguageRepository{language: &models.Language{ID: 1}}, logger)

		topic, err := svc.Update(context.Background(), auth.Identity{ID: 2}, 1, &models.TopicPatch{Name: &name})
		require.NoError(t, err)
		require.NotNil(t, topic)
		require.NotNil(t, topicRepo.lastPatch)
		assert.Equal(t, "Renamed", *topicRepo.lastPatch.Name)
	})

	t.Run("non-owner is rejected before any write", func(t *testing.T) {
		topicRepo := &mockTopicRepository{topic: &models.Topic{ID: 1, Name: "Food", LanguageID: 1, UserID: 2}}
		svc := NewTopicService(topicRepo, &mockLanguageRepository{language: &models.Language{ID: 1}}, logger)

		topic, err := svc.Update(context.Background(), auth.Identity{ID: 3}, 1, &models.TopicPatch{Name: &name})
		require.Error(t, err)
		assert.Nil(t, topic)
		assert.Nil(t, topicRepo.lastPatch)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindForbidden, appErr.Kind)
	})

	t.Run("rename collides with another owned topic", func(t *testing.T) {
		topicRepo := &mockTopicRepository{
			topic:      &models.Topic{ID: 1, Name: "Food", LanguageID: 1, UserID: 2},
			nameExists: true,
		}
		svc := NewTopicService(topicRepo, &mockLanguageRepository{language: &models.Language{ID: 1}}, logger)

		_, err := svc.Update(context.Background(), auth.Identity{ID: 2}, 1, &models.TopicPatch{Name: &name})
		require.Error(t, err)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindConflict, appErr.Kind)
	})
}

func TestTopicService_Delete(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("owner can delete", func(t *testing.T) {
		topicRepo := &mockTopicRepository{topic: &models.Topic{ID: 1, UserID: 2}}
		svc := NewTopicService(topicRepo, &mockLanguageRepository{}, logger)

		err := svc.Delete(context.Background(), auth.Identity{ID: 2}, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, topicRepo.deletedID)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		topicRepo := &mockTopicRepository{topic: &models.Topic{ID: 1, UserID: 2}}
		svc := NewTopicService(topicRepo, &mockLanguageRepository{}, logger)

		err := svc.Delete(context.Background(), auth.Identity{ID: 3}, 1)
		require.Error(t, err)
		assert.Zero(t, topicRepo.deletedID)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindForbidden, appErr.Kind)
	})

	t.Run("missing topic", func(t *testing.T) {
		svc := NewTopicService(&mockTopicRepository{}, &mockLanguageRepository{}, logger)

		err := svc.Delete(context.Background(), auth.Identity{ID: 2}, 42)
		require.Error(t, err)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	})
}
