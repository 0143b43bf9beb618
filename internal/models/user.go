// Package models holds the persistent records the API exposes.
//
// Field names on the wire keep the `_id` convention the original
// API contract uses, so existing clients keep working unchanged.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a tracked account identified by a unique username.
//
// ExerciseCount is a denormalized counter of the user's exercises,
// maintained asynchronously by the recount job. It is internal
// bookkeeping and never serialized to clients.
type User struct {
	ID            uuid.UUID `json:"_id"`
	Username      string    `json:"username"`
	ExerciseCount int       `json:"-"`
	CreatedAt     time.Time `json:"-"`
}

// Summary reduces a User to the shape returned by the users endpoints.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
	}
}

// UserSummary is the `{_id, username}` projection of a User.
type UserSummary struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
}
