package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
)

// grammarElementRepository implements GrammarElementRepository
type grammarElementRepository struct {
	db *sql.DB
}

// NewGrammarElementRepository creates a new grammar element repository
func NewGrammarElementRepository(db *sql.DB) *grammarElementRepository {
	return &grammarElementRepository{
		db: db,
	}
}

// Create inserts a new grammar element into the database
func (r *grammarElementRepository) Create(ctx context.Context, element *models.GrammarElement) error {
	query := `INSERT INTO grammar_elements (name) VALUES (?)`

	result, err := r.db.ExecContext(ctx, query, element.Name)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("grammar_element_exists", "name", fmt.Sprintf("grammar element %q already exists", element.Name))
		}
		return fmt.Errorf("failed to create grammar element: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	element.ID = int(id)
	return nil
}

// GetByID retrieves a grammar element by ID
func (r *grammarElementRepository) GetByID(ctx context.Context, id int) (*models.GrammarElement, error) {
	query := `SELECT id, name FROM grammar_elements WHERE id = ? LIMIT 1`

	element := &models.GrammarElement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&element.ID, &element.Name)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("grammar_element", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grammar element by ID: %w", err)
	}

	return element, nil
}

// ExistsByName checks if a grammar element with the given name exists
func (r *grammarElementRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM grammar_elements WHERE name = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check grammar element existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all grammar elements ordered by id
func (r *grammarElementRepository) GetAll(ctx context.Context) ([]models.GrammarElement, error) {
	query := `SELECT id, name FROM grammar_elements ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query grammar elements: %w", err)
	}
	defer rows.Close()

	var elements []models.GrammarElement
	for rows.Next() {
		var element models.GrammarElement
		if err := rows.Scan(&element.ID, &element.Name); err != nil {
			return nil, fmt.Errorf("failed to scan grammar element: %w", err)
		}
		elements = append(elements, element)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return elements, nil
}

// Update applies a partial update to a grammar element
func (r *grammarElementRepository) Update(ctx context.Context, id int, patch *models.GrammarElementPatch) error {
	if patch.Name == nil {
		return nil
	}

	query := `UPDATE grammar_elements SET name = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, *patch.Name, id)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("grammar_element_exists", "name", fmt.Sprintf("grammar element %q already exists", *patch.Name))
		}
		return fmt.Errorf("failed to update grammar element: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("grammar_element", id)
	}

	return nil
}

// Delete deletes a grammar element by ID.
// Deletion is restricted while words still reference it.
func (r *grammarElementRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM grammar_elements WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isRowReferenced(err) {
			return apperrors.Conflict("grammar_element_in_use", "path", "grammar element is still referenced by words")
		}
		return fmt.Errorf("failed to delete grammar element: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("grammar_element", id)
	}

	return nil
}
