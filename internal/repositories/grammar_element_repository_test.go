package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
)

// setupGrammarElementTestRepository creates a grammar element repository with a mock database
func setupGrammarElementTestRepository(t *testing.T) (*grammarElementRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewGrammarElementRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestGrammarElementRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO grammar_elements \(name\)`).
			WithArgs("noun").
			WillReturnResult(sqlmock.NewResult(4, 1))

		element := &models.GrammarElement{Name: "noun"}
		err := repo.Create(context.Background(), element)
		require.NoError(t, err)
		assert.Equal(t, 4, element.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO grammar_elements \(name\)`).
			WithArgs("noun").
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'noun' for key 'grammar_elements.uq_grammar_elements_name'"})

		err := repo.Create(context.Background(), &models.GrammarElement{Name: "noun"})
		require.Error(t, err)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindConflict, appErr.Kind)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGrammarElementRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, name FROM grammar_elements WHERE id = \?`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "noun"))

		element, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "noun", element.Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, name FROM grammar_elements WHERE id = \?`).
			WithArgs(42).
			WillReturnError(sql.ErrNoRows)

		element, err := repo.GetByID(context.Background(), 42)
		require.Error(t, err)
		assert.Nil(t, element)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGrammarElementRepository_Update(t *testing.T) {
	newName := "verb"

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE grammar_elements SET name = \? WHERE id = \?`).
			WithArgs("verb", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), 1, &models.GrammarElementPatch{Name: &newName})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		err := repo.Update(context.Background(), 1, &models.GrammarElementPatch{})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE grammar_elements SET name = \? WHERE id = \?`).
			WithArgs("verb", 42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), 42, &models.GrammarElementPatch{Name: &newName})
		require.Error(t, err)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGrammarElementRepository_Delete(t *testing.T) {
	t.Run("still referenced by words", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM grammar_elements WHERE id = \?`).
			WithArgs(1).
			WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

		err := repo.Delete(context.Background(), 1)
		require.Error(t, err)

		appErr := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindConflict, appErr.Kind)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGrammarElementTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM grammar_elements WHERE id = \?`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 1)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
