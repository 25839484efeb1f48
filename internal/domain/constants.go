package domain

// Default scheduling values
const (
	DefaultSlotGranularityMinutes = 30 // fixed booking grid step
	DefaultDurationMinutes        = 30
	DefaultMinimumNoticeMinutes   = 0
)

// Business validation constants
const (
	MinDurationMinutes      = 5
	MaxDurationMinutes      = 480 // 8 hours
	MaxBufferMinutes        = 240
	MaxMinimumNoticeMinutes = 10080 // 1 week
	MaxNotesLength          = 500
	MaxNameLength           = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
