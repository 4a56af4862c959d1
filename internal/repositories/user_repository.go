package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
)

// userRepository implements UserRepository
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		// Unique constraints resolve create races; map the loser to Conflict
		if isDuplicateEntry(err, "username") {
			return apperrors.Conflict("username_taken", "username", "user with this username already exists")
		}
		if isDuplicateEntry(err, "email") {
			return apperrors.Conflict("email_taken", "email", "user with this email already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, is_superuser, is_verified, created_at, updated_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsSuperuser,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByLogin retrieves a user by username or email
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, is_superuser, is_verified, created_at, updated_at
		FROM users
		WHERE username = ? OR email = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, login, login).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsSuperuser,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by login: %w", err)
	}

	return user, nil
}

// ExistsByUsername checks if a user exists with the given username
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE username = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all users ordered by id
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, is_superuser, is_verified, created_at, updated_at
		FROM users
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.IsActive,
			&user.IsSuperuser,
			&user.IsVerified,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// Update applies a partial update; patch.Password must already be hashed.
// Only non-nil fields are written, everything else is left untouched.
func (r *userRepository) Update(ctx context.Context, id int, patch *models.UserPatch) error {
	var setParts []string
	var args []any

	if patch.Username != nil {
		setParts = append(setParts, "username = ?")
		args = append(args, *patch.Username)
	}
	if patch.Email != nil {
		setParts = append(setParts, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.Password != nil {
		setParts = append(setParts, "password_hash = ?")
		args = append(args, *patch.Password)
	}

	if len(setParts) == 0 {
		return nil
	}

	setParts = append(setParts, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(setParts, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntry(err, "username") {
			return apperrors.Conflict("username_taken", "username", "user with this username already exists")
		}
		if isDuplicateEntry(err, "email") {
			return apperrors.Conflict("email_taken", "email", "user with this email already exists")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("user", id)
	}

	return nil
}

// Delete deletes a user by ID
func (r *userRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isRowReferenced(err) {
			return apperrors.Conflict("user_in_use", "path", "user still owns topics or language links")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("user", id)
	}

	return nil
}

// CountTopicsOwned returns the number of topics owned by a user
func (r *userRepository) CountTopicsOwned(ctx context.Context, userID int) (int, error) {
	query := `SELECT COUNT(*) FROM topics WHERE user_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count owned topics: %w", err)
	}

	return count, nil
}

// AddLanguage links a language the user is learning
func (r *userRepository) AddLanguage(ctx context.Context, userID, languageID int) error {
	query := `
		INSERT INTO language_user_association (language_id, user_id)
		VALUES (?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, languageID, userID)
	if err != nil {
		if isDuplicateEntry(err, "") {
			return apperrors.Conflict("language_already_added", "path", "language is already linked to this user")
		}
		if isInvalidReference(err) {
			return apperrors.NotFound("language", languageID)
		}
		return fmt.Errorf("failed to add user language: %w", err)
	}

	return nil
}

// RemoveLanguage unlinks a language the user is learning
func (r *userRepository) RemoveLanguage(ctx context.Context, userID, languageID int) error {
	query := `DELETE FROM language_user_association WHERE language_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, languageID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove user language: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("language", languageID)
	}

	return nil
}

// GetLanguages returns the languages linked to a user ordered by id
func (r *userRepository) GetLanguages(ctx context.Context, userID int) ([]models.Language, error) {
	query := `
		SELECT l.id, l.name
		FROM languages l
		JOIN language_user_association a ON a.language_id = l.id
		WHERE a.user_id = ?
		ORDER BY l.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user languages: %w", err)
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
