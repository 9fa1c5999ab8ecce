package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status constants for the booking lifecycle.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Session type constants
const (
	TypeIndividual   = "individual"
	TypeGroup        = "group"
	TypeCrisis       = "crisis"
	TypeConsultation = "consultation"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled}

// ValidSessionTypes contains all valid session type values.
var ValidSessionTypes = []string{TypeIndividual, TypeGroup, TypeCrisis, TypeConsultation}

// MeetingDuration is how long an approved session stays joinable after its
// start time.
const MeetingDuration = 40 * time.Minute

// Domain errors
var (
	ErrEmptyStudentID     = errors.New("student ID cannot be empty")
	ErrEmptyDate          = errors.New("date cannot be empty")
	ErrEmptyTime          = errors.New("time cannot be empty")
	ErrEmptyReason        = errors.New("reason cannot be empty")
	ErrInvalidSessionType = errors.New("session type must be one of: individual, group, crisis, consultation")
	ErrInvalidStatus      = errors.New("status must be one of: pending, approved, rejected, completed, cancelled")
	ErrNotCancellable     = errors.New("only pending or approved bookings can be cancelled")
	ErrNotPending         = errors.New("booking is not pending")
	ErrPastDate           = errors.New("booking date cannot be in the past")
)

// Booking represents a counselling session request and its progress
// through staff review.
type Booking struct {
	ID          string
	StudentID   string
	FullName    string
	Email       string
	Phone       string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM format
	SessionType string
	Reason      string
	Notes       string // extra context from the student
	StaffNotes  string // filled in on approval or rejection
	Status      string
	MeetLink    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if strings.TrimSpace(b.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", b.Date, err)
	}
	if strings.TrimSpace(b.Time) == "" {
		return ErrEmptyTime
	}
	if strings.TrimSpace(b.Reason) == "" {
		return ErrEmptyReason
	}
	if !contains(ValidSessionTypes, b.SessionType) {
		return ErrInvalidSessionType
	}
	if !contains(ValidStatuses, b.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// CanCancel reports whether the student may still withdraw the booking.
// INVARIANT: Booking fields are not mutated
func (b *Booking) CanCancel() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// Cancel withdraws a pending or approved booking.
// POST: Status is cancelled, or ErrNotCancellable if the lifecycle has moved on
func (b *Booking) Cancel() error {
	if !b.CanCancel() {
		return ErrNotCancellable
	}
	b.Status = StatusCancelled
	return nil
}

// Approve moves a pending booking to approved with an optional meeting link.
// PRE: Status is pending
// POST: Status is approved; MeetLink and StaffNotes recorded
func (b *Booking) Approve(meetLink, staffNotes string) error {
	if b.Status != StatusPending {
		return ErrNotPending
	}
	b.Status = StatusApproved
	b.MeetLink = meetLink
	b.StaffNotes = staffNotes
	return nil
}

// Reject moves a pending booking to rejected.
// PRE: Status is pending
// POST: Status is rejected; StaffNotes recorded
func (b *Booking) Reject(staffNotes string) error {
	if b.Status != StatusPending {
		return ErrNotPending
	}
	b.Status = StatusRejected
	b.StaffNotes = staffNotes
	return nil
}

// StartsAt parses the booking's date and time into a single instant.
// PRE: Date is YYYY-MM-DD and Time is HH:MM or HH:MM:SS
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	clock := b.Time
	if len(clock) == 5 {
		clock += ":00"
	}
	return time.ParseInLocation("2006-01-02 15:04:05", b.Date+" "+clock, loc)
}

// MeetingState classifies an approved session against the clock.
type MeetingState string

// Meeting state constants
const (
	MeetingUpcoming MeetingState = "upcoming"
	MeetingLive     MeetingState = "live"
	MeetingEnded    MeetingState = "ended"
)

// MeetingStateAt returns where the session sits relative to now: upcoming
// before the start time, live for MeetingDuration after it, ended beyond
// that.
// INVARIANT: Booking fields are not mutated
func (b *Booking) MeetingStateAt(now time.Time) (MeetingState, error) {
	start, err := b.StartsAt(now.Location())
	if err != nil {
		return "", err
	}
	switch {
	case now.Before(start):
		return MeetingUpcoming, nil
	case now.Before(start.Add(MeetingDuration)):
		return MeetingLive, nil
	default:
		return MeetingEnded, nil
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
