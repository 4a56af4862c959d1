package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
)

// languageRepository implements LanguageRepository
type languageRepository struct {
	db *sql.DB
}

// NewLanguageRepository creates a new language repository
func NewLanguageRepository(db *sql.DB) *languageRepository {
	return &languageRepository{
		db: db,
	}
}

// Create inserts a new language into the database
func (r *languageRepository) Create(ctx context.Context, language *models.Language) error {
	query := `INSERT INTO languages (name) VALUES (?)`

	result, err := r.db.ExecContext(ctx, query, language.Name)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("language_exists", "name", fmt.Sprintf("language %q already exists", language.Name))
		}
		return fmt.Errorf("failed to create language: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	language.ID = int(id)
	return nil
}

// GetByID retrieves a language by ID
func (r *languageRepository) GetByID(ctx context.Context, id int) (*models.Language, error) {
	query := `SELECT id, name FROM languages WHERE id = ? LIMIT 1`

	language := &models.Language{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&language.ID, &language.Name)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("language", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get language by ID: %w", err)
	}

	return language, nil
}

// ExistsByName checks if a language with the given name exists
func (r *languageRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM languages WHERE name = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check language existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all languages ordered by id
func (r *languageRepository) GetAll(ctx context.Context) ([]models.Language, error) {
	query := `SELECT id, name FROM languages ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query languages: %w", err)
	}
	defer rows.Close()

	var languages []models.Language
	for rows.Next() {
		var language models.Language
		if err := rows.Scan(&language.ID, &language.Name); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		languages = append(languages, language)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return languages, nil
}

// Update applies a partial update to a language
func (r *languageRepository) Update(ctx context.Context, id int, patch *models.LanguagePatch) error {
	if patch.Name == nil {
		return nil
	}

	query := `UPDATE languages SET name = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, *patch.Name, id)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("language_exists", "name", fmt.Sprintf("language %q already exists", *patch.Name))
		}
		return fmt.Errorf("failed to update language: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("language", id)
	}

	return nil
}

// Delete deletes a language by ID.
// Deletion is restricted while topics or user links still reference it.
func (r *languageRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM languages WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isRowReferenced(err) {
			return apperrors.Conflict("language_in_use", "path", "language is still referenced by topics or users")
		}
		return fmt.Errorf("failed to delete language: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("language", id)
	}

	return nil
}
