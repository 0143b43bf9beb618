package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout renders calendar dates the way the API always has:
// weekday, month, day, year, locale-invariant (e.g. "Mon Jan 01 2024").
const DateLayout = "Mon Jan 02 2006"

// Exercise is one logged workout entry. It belongs to exactly one
// user and is immutable once written.
type Exercise struct {
	ID          int64     `json:"-"`
	UserID      uuid.UUID `json:"-"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// FormatDate renders the exercise date in the API's calendar format.
func (e Exercise) FormatDate() string {
	return e.Date.Format(DateLayout)
}
