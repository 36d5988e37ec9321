package models

// ============================================================================
// VALIDATION LIMITS
// ============================================================================

const (
	// MaxTitleLength is the longest accepted task title, in characters
	MaxTitleLength = 255

	// MaxDescriptionLength is the longest accepted task description, in characters
	MaxDescriptionLength = 10000
)

// ============================================================================
// REMINDER DEFAULTS
// ============================================================================

// ReminderLeadHours is how far ahead of the due date a reminder fires
const ReminderLeadHours = 24

// StatsWindowDays is the number of trailing days reported by TaskStats
const StatsWindowDays = 7
