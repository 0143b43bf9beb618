// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for forms or HTTPError for API responses)
// to ensure the client receives meaningful, actionable, and
// consistent error messages.
//
// The message of an HTTPError is serialized under the `error` key,
// which keeps the wire format the original exercise-tracker API
// always used: {"error": "Username already taken"}.
package errs
