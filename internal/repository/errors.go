// Package repository holds the MySQL-backed stores and the sentinel errors
// shared with every other store implementation.  Higher layers match these
// with errors.Is and translate them into failures.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the addressed row does not exist, including
// when a concurrent delete removed it first.
var ErrNotFound = errors.New("not found")

// ErrSeatTaken is returned when a booking insert collides with an existing
// claim on the same seat slot.
var ErrSeatTaken = errors.New("seat already taken")

// ErrForbidden is returned when the caller may not act on the resource,
// for example a self-cancel with the wrong token.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as a clearing confirmation that names someone else.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when a staff account already uses the email.
var ErrEmailExists = errors.New("email already exists")

const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a unique-key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
