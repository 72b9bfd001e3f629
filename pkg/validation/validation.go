// Package validation holds the pure form-validation checks clients run before
// submitting a request. They are advisory; the server remains the authority.
package validation

import (
	"regexp"
	"strings"
	"time"
)

// Field limits mirrored from the server.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCategoryLength    = 50
	MinPasswordLength    = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required reports whether the value is non-empty after trimming whitespace.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxLen reports whether the value fits within the given ceiling.
func MaxLen(value string, max int) bool {
	return len(value) <= max
}

// ValidTitle checks the title field: required and within its ceiling.
func ValidTitle(title string) bool {
	return Required(title) && MaxLen(title, MaxTitleLength)
}

// ValidDescription checks the optional description field.
func ValidDescription(description string) bool {
	return MaxLen(description, MaxDescriptionLength)
}

// ValidCategory checks the optional category field.
func ValidCategory(category string) bool {
	return MaxLen(category, MaxCategoryLength)
}

// ValidEmail does a simple shape check; deliverability is not its job.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword enforces the minimum password length.
func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// PasswordsMatch reports whether the confirmation equals the password.
func PasswordsMatch(password, confirmation string) bool {
	return password == confirmation
}

// DueDateNotPast reports whether the due date is today or later, compared at
// day granularity rather than time-of-day.
func DueDateNotPast(due, now time.Time) bool {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !due.Before(startOfDay)
}
