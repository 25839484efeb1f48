package domain

import "errors"

var (
	// ErrInvalidDayOfWeek returned for a weekday outside 0-6
	ErrInvalidDayOfWeek = errors.New("domain: day of week must be between 0 and 6")

	// ErrInvalidWorkingWindow returned when an enabled rule has start >= end
	ErrInvalidWorkingWindow = errors.New("domain: working hours start must be before end")

	// ErrInvalidStatusTransition returned for a disallowed status change
	ErrInvalidStatusTransition = errors.New("domain: invalid appointment status transition")

	// ErrAmbiguousDurationSource returned when both or neither of
	// serviceID / eventTypeID are supplied for a booking request
	ErrAmbiguousDurationSource = errors.New("domain: exactly one of serviceID or eventTypeID must be set")
)
