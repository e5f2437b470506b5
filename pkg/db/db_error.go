package db

import (
	"fmt"
	"strings"
)

// ErrInvalidDB is returned whenever an operation is attempted through a
// Proxy wrapping a nil DB.
var ErrInvalidDB = fmt.Errorf("invalid DB provided to proxy")

// ErrInvalidQuery is returned when a QueryDesc is missing its Props or
// Table, making it impossible to generate a valid SQL query.
var ErrInvalidQuery = fmt.Errorf("invalid query description provided to proxy")

// ErrInvalidData is returned when an InsertReq argument cannot be
// marshalled into a value suitable for an insertion script call.
var ErrInvalidData = fmt.Errorf("unable to marshal data for insertion")

// formatDBError wraps a raw driver error with its named SQL error code
// when recognized, so callers can compare against ErrorType values
// rather than matching on driver-specific message text.
func formatDBError(err error) error {
	if err == nil {
		return nil
	}
	code := GetSQLErrorCode(err.Error())
	if code == Unknown {
		return err
	}
	return fmt.Errorf("%v (code: %d)", err, code)
}

// ErrorType :
// Defines some convenience named values for common SQL
// errors.
type ErrorType int

// Defines the possible named SQL errors.
const (
	DuplicatedElement ErrorType = iota
	ForeignKeyViolation
	Unknown
)

// getDuplicatedElementErrorKey :
// Used to retrieve a string describing part of the error
// message issued by the database when trying to insert a
// duplicated element on a unique column. Can be used to
// standardize the definition of this error.
//
// Return part of the error string issued when inserting
// an already existing key.
func getDuplicatedElementErrorKey() string {
	return "SQLSTATE 23505"
}

// getForeignKeyViolationErrorKey :
// Used to retrieve a string describing part of the error
// message issued by the database when trying to insert an
// element that does not match a foreign key constraint.
// Can be used to standardize the definition of this error.
//
// Return part of the error string issued when violating a
// foreign key constraint.
func getForeignKeyViolationErrorKey() string {
	return "SQLSTATE 23503"
}

// GetSQLErrorCode :
// Performs an analysis of the input error string to extract
// a named error code if possible. In case the error does not
// seem to match anything known, the `Unknown` code is sent
// back.
//
// The `errStr` defines the error message to analyze.
//
// Returns the error code for this error or `Unknown` if it
// does not match any known error.
func GetSQLErrorCode(errStr string) ErrorType {
	// Check for all known keys.
	if strings.Contains(errStr, getDuplicatedElementErrorKey()) {
		return DuplicatedElement
	}

	if strings.Contains(errStr, getForeignKeyViolationErrorKey()) {
		return ForeignKeyViolation
	}

	return Unknown
}
