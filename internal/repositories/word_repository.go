package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
)

// wordRepository implements WordRepository
type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *sql.DB) *wordRepository {
	return &wordRepository{
		db: db,
	}
}

// GetByID retrieves a word by ID
func (r *wordRepository) GetByID(ctx context.Context, id int) (*models.Word, error) {
	query := `
		SELECT id, learnt_word, definition, example, grammar_element_id
		FROM words
		WHERE id = ?
		LIMIT 1
	`

	word := &models.Word{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&word.ID,
		&word.LearntWord,
		&word.Definition,
		&word.Example,
		&word.GrammarElementID,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("word", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %w", err)
	}

	return word, nil
}

// GetAll retrieves all words ordered by id
func (r *wordRepository) GetAll(ctx context.Context) ([]models.Word, error) {
	query := `
		SELECT id, learnt_word, definition, example, grammar_element_id
		FROM words
		ORDER BY id
	`

	return r.queryWords(ctx, query)
}

// GetAllForTopic retrieves all words linked to a topic ordered by id
func (r *wordRepository) GetAllForTopic(ctx context.Context, topicID int) ([]models.Word, error) {
	query := `
		SELECT w.id, w.learnt_word, w.definition, w.example, w.grammar_element_id
		FROM words w
		JOIN topic_word_association a ON a.word_id = w.id
		WHERE a.topic_id = ?
		ORDER BY w.id
	`

	return r.queryWords(ctx, query, topicID)
}

func (r *wordRepository) queryWords(ctx context.Context, query string, args ...any) ([]models.Word, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var word models.Word
		err := rows.Scan(
			&word.ID,
			&word.LearntWord,
			&word.Definition,
			&word.Example,
			&word.GrammarElementID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}

// ExistsInTopic checks whether a word with the given learnt_word is already
// linked to the topic. excludeWordID skips the word being updated; pass 0 on create.
func (r *wordRepository) ExistsInTopic(ctx context.Context, topicID int, learntWord string, excludeWordID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT *
			FROM words w
			JOIN topic_word_association a ON a.word_id = w.id
			WHERE a.topic_id = ? AND w.learnt_word = ? AND w.id != ?
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, topicID, learntWord, excludeWordID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check word existence in topic: %w", err)
	}

	return exists, nil
}

// DuplicateInLinkedTopics checks whether renaming the word to learntWord
// would collide with another word in any topic the word is linked to
func (r *wordRepository) DuplicateInLinkedTopics(ctx context.Context, wordID int, learntWord string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT *
			FROM topic_word_association own
			JOIN topic_word_association other ON other.topic_id = own.topic_id
			JOIN words w ON w.id = other.word_id
			WHERE own.word_id = ? AND w.learnt_word = ? AND w.id != ?
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, wordID, learntWord, wordID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check word duplicates: %w", err)
	}

	return exists, nil
}

// OwnedBy checks whether any topic linked to the word belongs to the user.
// Word ownership is transitive through its topics.
func (r *wordRepository) OwnedBy(ctx context.Context, wordID, userID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT *
			FROM topics t
			JOIN topic_word_association a ON a.topic_id = t.id
			WHERE a.word_id = ? AND t.user_id = ?
		)
	`

	var owned bool
	err := r.db.QueryRowContext(ctx, query, wordID, userID).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("failed to check word ownership: %w", err)
	}

	return owned, nil
}

// CreateInTopic inserts the word row and its association to the topic in
// one transaction; both succeed or neither does.
func (r *wordRepository) CreateInTopic(ctx context.Context, topicID int, word *models.Word) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO words (learnt_word, definition, example, grammar_element_id) VALUES (?, ?, ?, ?)`,
		word.LearntWord,
		word.Definition,
		word.Example,
		word.GrammarElementID,
	)
	if err != nil {
		if isInvalidReference(err) {
			return apperrors.Malformed("grammarElementId", fmt.Sprintf("grammar element with id %d does not exist", word.GrammarElementID))
		}
		return fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO topic_word_association (topic_id, word_id) VALUES (?, ?)`,
		topicID, id,
	); err != nil {
		if isInvalidReference(err) {
			return apperrors.NotFound("topic", topicID)
		}
		return fmt.Errorf("failed to create topic word association: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	word.ID = int(id)
	return nil
}

// Link associates an existing word with a topic
func (r *wordRepository) Link(ctx context.Context, topicID, wordID int) error {
	query := `INSERT INTO topic_word_association (topic_id, word_id) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, topicID, wordID)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("association_duplicate", "path", "word is already linked to this topic")
		}
		if isInvalidReference(err) {
			return apperrors.NotFound("word", wordID)
		}
		return fmt.Errorf("failed to link word to topic: %w", err)
	}

	return nil
}

// Update applies a partial update to a word
func (r *wordRepository) Update(ctx context.Context, id int, patch *models.WordPatch) error {
	var setParts []string
	var args []any

	if patch.LearntWord != nil {
		setParts = append(setParts, "learnt_word = ?")
		args = append(args, *patch.LearntWord)
	}
	if patch.Definition != nil {
		setParts = append(setParts, "definition = ?")
		args = append(args, *patch.Definition)
	}
	if patch.Example != nil {
		setParts = append(setParts, "example = ?")
		args = append(args, *patch.Example)
	}
	if patch.GrammarElementID != nil {
		setParts = append(setParts, "grammar_element_id = ?")
		args = append(args, *patch.GrammarElementID)
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE words SET %s WHERE id = ?`, strings.Join(setParts, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isInvalidReference(err) {
			return apperrors.Malformed("grammarElementId", fmt.Sprintf("grammar element with id %d does not exist", *patch.GrammarElementID))
		}
		return fmt.Errorf("failed to update word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("word", id)
	}

	return nil
}

// DeleteCascade removes every association row referencing the word and the
// word row itself in one transaction
func (r *wordRepository) DeleteCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM topic_word_association WHERE word_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete word associations: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("word", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
