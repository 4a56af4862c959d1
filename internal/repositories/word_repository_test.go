package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
)

// setupWordTestRepository creates a word repository with a mock database
func setupWordTestRepository(t *testing.T) (*wordRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewWordRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func wordColumns() []string {
	return []string{"id", "learnt_word", "definition", "example", "grammar_element_id"}
}

func TestWordRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupWordTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(wordColumns()).
			AddRow(1, "Haus", "house", "Das Haus ist alt.", 2)
		mock.ExpectQuery(`SELECT id, learnt_word, definition, example, grammar_element_id`).
			WithArgs(1).
			WillReturnRows(rows)

		word, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Haus", word.LearntWord)
		assert.Equal(t, 2, word.GrammarElementID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupWordTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, learnt_word, definition, example, grammar_element_id`).
			WithArgs(42).
			WillReturnError(sql.ErrNoRows)

		word, err := repo.GetByID(context.Background(), 42)
		require.Error(t, err)
		assert.Nil(t, word)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWordRepository_GetAllForTopic(t *testing.T) {
	repo, mock, cleanup := setupWordTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows(wordColumns()).
		AddRow(1, "Haus", "house", "Das Haus ist alt.", 2).
		AddRow(2, "gehen", "to go", "Wir gehen nach Hause.", 3)
	mock.ExpectQuery(`JOIN topic_word_association a ON a.word_id = w.id`).
		WithArgs(7).
		WillReturnRows(rows)

	words, err := repo.GetAllForTopic(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "Haus", words[0].LearntWord)
	assert.Equal(t, "gehen", words[1].LearntWord)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepository_ExistsInTopic(t *testing.T) {
	repo, mock, cleanup := setupWordTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`WHERE a.topic_id = \? AND w.learnt_word = \? AND w.id != \?`).
		WithArgs(7, "Haus", 0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsInTopic(context.Background(), 7, "Haus", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepository_OwnedBy(t *testing.T) {
	tests := []struct {
		name     string
		owned    bool
		expected bool
	}{
		{name: "owned through a linked topic", owned: true, expected: true},
		{name: "not linked to any of the user's topics", owned: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupWordTestRepository(t)
			defer cleanup()

			mock.ExpectQuery(`WHERE a.word_id = \? AND t.user_id = \?`).
				WithArgs(1, 2).
				WillReturnRows(sqlmock.NewRows([]string{"owned"}).AddRow(tt.owned))

			owned, err := repo.OwnedBy(context.Background(), 1, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, owned)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepository_CreateInTopic(t *testing.T) {
	word := func() *models.Word {
		return &models.Word{LearntWord: "Haus", Definition: "house", Example: "Das Haus ist alt.", GrammarElementID: 2}
	}

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupWordTestRepository(t)
		defer cleanup()

		w := word()
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO words \(learnt_word, definition, example, grammar_element_id\)`).
			WithArgs("Haus", "house", "Das Haus ist alt.", 2).
			WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectExec(`INSERT INTO topic_word_association \(topic_id, word_id\)`).
			WithArgs(7, int64(9)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.CreateInTopic(context.Background(), 7, w)
		require.NoError(t, err)
		assert.Equal(t, 9, w.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown grammar element rolls back", func(t *testing.T) {
		repo, mock, cleanup := setupWordTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO words \(learnt_word, definition, example, grammar_element_id\)`).
			WithArgs("Haus", "house", "Das Haus ist alt.", 2).
			WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
		mock.ExpectRollback()

		err := repo.CreateInTopic(context.Background(), 7, word())
		require.Error(t, err)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindMalformed, appErr.Kind)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("association failure rolls back the word insert", func(t *testing.T) {
		repo, mock, cleanup := setupWordTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO words \(learnt_word, definition, example, grammar_element_id\)`).
			WithArgs("Haus", "house", "Das Haus ist alt.", 2).
			WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectExec(`INSERT INTO topic_word_association \(topic_id, word_id\)`).
			WithArgs(7, int64(9)).
			WillReturnError(errors.New("database error"))
		mock.ExpectRollback()

		err := repo.CreateInTopic(context.Background(), 7, word())
		require.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWordRepository_Link(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedKind  apperrors.Kind
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO topic_word_association \(topic_id, word_id\)`).
					WithArgs(7, 9).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
		},
		{
			name: "already linked",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO topic_word_association \(topic_id, word_id\)`).
					WithArgs(7, 9).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7-9' for key 'uq_topic_word'"})
			},
			expectedError: true,
			expectedKind:  apperrors.KindConflict,
		},
		{
			name: "word does not exist",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO topic_word_association \(topic_id, word_id\)`).
					WithArgs(7, 9).
					WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
			},
			expectedError: true,
			expectedKind:  apperrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupWordTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Link(context.Background(), 7, 9)

			if tt.expectedError {
				require.Error(t, err)
				if tt.expectedKind != 0 {
					appErr := apperrors.As(err)
					require.NotNil(t, appErr)
					assert.Equal(t, tt.expectedKind, appErr.Kind)
				}
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepository_DeleteCascade(t *testing.T) {
	t.Run("removes associations then the word", func(t *testing.T) {
		repo, mock, cleanup := setupWordTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM topic_word_association WHERE word_id = \?`).
			WithArgs(9).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM words WHERE id = \?`).
			WithArgs(9).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteCascade(context.Background(), 9)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("word not found rolls back", func(t *testing.T) {
		repo, mock, cleanup := setupWordTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM topic_word_association WHERE word_id = \?`).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM words WHERE id = \?`).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.DeleteCascade(context.Background(), 42)
		require.Error(t, err)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
