package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID = "user_id"
	ContextKeyTask   = "task"
)

// Field limits enforced server-side (mirrored by client-side validation)
const (
	MinPasswordLength    = 6
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCategoryLength    = 50
	MaxNameLength        = 50
)

// DefaultRole is assigned to every newly registered user.
const DefaultRole = "user"
