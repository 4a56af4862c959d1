// Package services implements the business rules on top of the repositories
package services

import (
	"github.com/vocabulearn/backend/internal/apperrors"
)

// authorizeOwner is the single ownership check for topic and word mutations.
// It must run before any mutating statement so a failure never leaves a
// partial write.
func authorizeOwner(userID, ownerID int, msg string) error {
	if userID != ownerID {
		return apperrors.Forbidden(msg)
	}
	return nil
}
