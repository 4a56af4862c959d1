package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
)

// topicRepository implements TopicRepository
type topicRepository struct {
	db *sql.DB
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(db *sql.DB) *topicRepository {
	return &topicRepository{
		db: db,
	}
}

// Create inserts a new topic into the database
func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (name, language_id, user_id)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, topic.Name, topic.LanguageID, topic.UserID)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("topic_duplicate", "name", fmt.Sprintf("topic %q already exists for this user", topic.Name))
		}
		if isInvalidReference(err) {
			return apperrors.Malformed("languageId", fmt.Sprintf("language with id %d does not exist", topic.LanguageID))
		}
		return fmt.Errorf("failed to create topic: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	topic.ID = int(id)
	return nil
}

// GetByID retrieves a topic by ID
func (r *topicRepository) GetByID(ctx context.Context, id int) (*models.Topic, error) {
	query := `SELECT id, name, language_id, user_id FROM topics WHERE id = ? LIMIT 1`

	topic := &models.Topic{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&topic.ID,
		&topic.Name,
		&topic.LanguageID,
		&topic.UserID,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("topic", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic by ID: %w", err)
	}

	return topic, nil
}

// ExistsByNameForUser checks per-user topic name uniqueness.
// excludeID skips the topic being updated; pass 0 on create.
func (r *topicRepository) ExistsByNameForUser(ctx context.Context, name string, userID, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM topics WHERE name = ? AND user_id = ? AND id != ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, name, userID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check topic existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all topics ordered by id
func (r *topicRepository) GetAll(ctx context.Context) ([]models.Topic, error) {
	query := `SELECT id, name, language_id, user_id FROM topics ORDER BY id`

	return r.queryTopics(ctx, query)
}

// GetAllForUser retrieves all topics owned by a user ordered by id
func (r *topicRepository) GetAllForUser(ctx context.Context, userID int) ([]models.Topic, error) {
	query := `SELECT id, name, language_id, user_id FROM topics WHERE user_id = ? ORDER BY id`

	return r.queryTopics(ctx, query, userID)
}

func (r *topicRepository) queryTopics(ctx context.Context, query string, args ...any) ([]models.Topic, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var topic models.Topic
		err := rows.Scan(
			&topic.ID,
			&topic.Name,
			&topic.LanguageID,
			&topic.UserID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return topics, nil
}

// Update applies a partial update to a topic
func (r *topicRepository) Update(ctx context.Context, id int, patch *models.TopicPatch) error {
	var setParts []string
	var args []any

	if patch.Name != nil {
		setParts = append(setParts, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.LanguageID != nil {
		setParts = append(setParts, "language_id = ?")
		args = append(args, *patch.LanguageID)
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE topics SET %s WHERE id = ?`, strings.Join(setParts, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("topic_duplicate", "name", fmt.Sprintf("topic %q already exists for this user", *patch.Name))
		}
		if isInvalidReference(err) {
			return apperrors.Malformed("languageId", fmt.Sprintf("language with id %d does not exist", *patch.LanguageID))
		}
		return fmt.Errorf("failed to update topic: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("topic", id)
	}

	return nil
}

// DeleteCascade deletes a topic, every word linked through it, and all
// association rows in a single transaction. Words linked to other topics
// as well are still removed: a topic's words are treated as topic-owned.
func (r *topicRepository) DeleteCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Collect the ids of every word linked through this topic
	rows, err := tx.QueryContext(ctx, `SELECT word_id FROM topic_word_association WHERE topic_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to query topic associations: %w", err)
	}

	var wordIDs []int
	for rows.Next() {
		var wordID int
		if err := rows.Scan(&wordID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan word id: %w", err)
		}
		wordIDs = append(wordIDs, wordID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	// Deleting the words cascades into any remaining association rows,
	// including links those words have to other topics
	if len(wordIDs) > 0 {
		placeholders := make([]string, len(wordIDs))
		args := make([]any, len(wordIDs))
		for i, wordID := range wordIDs {
			placeholders[i] = "?"
			args[i] = wordID
		}

		query := fmt.Sprintf(`DELETE FROM words WHERE id IN (%s)`, strings.Join(placeholders, ","))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete topic words: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("topic", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
