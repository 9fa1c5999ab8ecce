package event

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxTitleLength       = 200
	MaxLocationLength    = 200
	MaxDescriptionLength = 2000
)

// DefaultMaxParticipants is used when capacity is not specified.
const DefaultMaxParticipants = 50

// DateLayout is the wire and storage format for event dates.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrEmptyTitle     = errors.New("event title cannot be empty")
	ErrEmptyDate      = errors.New("event date is required")
	ErrInvalidDate    = errors.New("event date must be in YYYY-MM-DD format")
	ErrEmptyLocation  = errors.New("event location cannot be empty")
	ErrBadCapacity    = errors.New("max participants must be at least 1")
	ErrEndBeforeStart = errors.New("end time cannot be before start time")
)

// Event represents a wellness event with capacity-limited registration.
// Dates are YYYY-MM-DD strings and clock times are HH:MM or HH:MM:SS, so
// same-day and upcoming comparisons reduce to string comparison.
// INVARIANT: RegisteredCount <= MaxParticipants is assumed of stored data;
// derivations clamp rather than enforce.
type Event struct {
	ID              string
	Title           string
	Description     string
	Date            string // YYYY-MM-DD
	Time            string // legacy single start time, kept for older events
	StartTime       string // empty on legacy events
	EndTime         string // empty on legacy events
	Location        string
	OrganizerID     string
	MaxParticipants int
	ImageURL        string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Registration records one student's place at an event.
// INVARIANT: (EventID, StudentID) is unique.
type Registration struct {
	ID           string
	EventID      string
	StudentID    string
	RegisteredAt time.Time
	Attended     bool
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 2000 characters")
	}
	if e.Date == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Location) == "" {
		return ErrEmptyLocation
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("event location cannot exceed 200 characters")
	}
	if e.MaxParticipants < 1 {
		return ErrBadCapacity
	}
	if e.StartTime != "" && e.EndTime != "" && e.EndTime < e.StartTime {
		return ErrEndBeforeStart
	}
	return nil
}

// StartClock returns the effective start time, preferring StartTime over the
// legacy Time field.
// INVARIANT: Event fields are not mutated
func (e *Event) StartClock() string {
	if e.StartTime != "" {
		return e.StartTime
	}
	return e.Time
}

// IsFull reports whether the event is at capacity.
// PRE: registered >= 0
func (e *Event) IsFull(registered int) bool {
	return registered >= e.MaxParticipants
}

// SpotsRemaining returns the number of open places, clamped at zero for
// display when server data over-counts.
// PRE: registered >= 0
func (e *Event) SpotsRemaining(registered int) int {
	remaining := e.MaxParticipants - registered
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsUpcoming reports whether the event is today or later.
// PRE: today is a YYYY-MM-DD string
func (e *Event) IsUpcoming(today string) bool {
	return e.Date >= today
}
