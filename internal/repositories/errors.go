// Package repositories implements data access on top of database/sql
package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL error numbers the repositories care about
const (
	mysqlDuplicateEntry    = 1062
	mysqlRowIsReferenced   = 1451
	mysqlNoReferencedRow   = 1452
)

// isDuplicateEntry reports whether err is a unique-constraint violation,
// optionally scoped to a key whose name contains keyPart
func isDuplicateEntry(err error, keyPart string) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return false
	}
	if keyPart == "" {
		return true
	}
	return strings.Contains(mysqlErr.Message, keyPart)
}

// isRowReferenced reports whether err is a restrict-on-delete violation
// (the row is still referenced by dependent rows)
func isRowReferenced(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlRowIsReferenced
}

// isInvalidReference reports whether err is a failed foreign key lookup
// (the referenced row does not exist)
func isInvalidReference(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlNoReferencedRow
}
