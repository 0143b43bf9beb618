package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fitkeep/exercise-tracker/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Known constraint names from the migrations. Violations on these map
// to the exact payloads the API contract promises.
const (
	UsernameUniqueConstraint = "users_username_key"
	ExerciseUserFKConstraint = "exercises_user_id_fkey"
)

// generateErrorCode creates consistent application error codes from DB
// errors, in the form <DOMAIN>_<ACTION>, e.g. users + UniqueViolation
// => USER_ALREADY_EXISTS. These codes are meant for machines, not humans.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing message for a
// DB error, phrased with whatever table/column info is available.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced later if the column can be inferred
		// from the constraint name.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column metadata.
// A column like "user_id" wins over the table name, since it names the
// referenced entity for foreign keys.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case identifiers into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueConstraintColumn matches "<table>_<column>_key" / "_ukey"
// constraint naming to recover the offending column.
var uniqueConstraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueConstraintColumn.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an
// application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If pgconn.PgError on a known constraint: the exact contract payload
//     ("Username already taken", "_id does not exist")
//   - If pgconn.PgError otherwise: a generic mapped errs error
//   - If ErrNoRows: 404 Not Found
//   - Otherwise: 500
//
// This is the final funnel; repositories and services may map the
// errors they recognize before this ever runs.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		// Contract-level constraints get their exact payloads.
		switch sqlErr.ConstraintName {
		case UsernameUniqueConstraint:
			code := "USERNAME_TAKEN"
			return errs.NewConflictError("Username already taken", &code)
		case ExerciseUserFKConstraint:
			code := "USER_NOT_FOUND"
			return errs.NewNotFoundError("_id does not exist", true, &code)
		}

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
