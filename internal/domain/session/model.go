package session

import (
	"errors"
	"fmt"
)

// Role constants. The platform recognises exactly two roles: students who
// consume services, and wellness-team staff who run them.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleStudent, RoleStaff}

// Domain errors
var (
	ErrInvalidRole   = errors.New("role must be 'student' or 'staff'")
	ErrLoginRequired = errors.New("login required")
)

// DeniedError is returned by Guard when a logged-in user attempts an action
// their role does not permit. Reason is suitable for direct display.
type DeniedError struct {
	Action string
	Role   string
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

// Session holds the current identity. The zero value means logged out.
// INVARIANT: when Username is set, Role is one of ValidRoles.
type Session struct {
	Username string
	Role     string
}

// LoggedIn reports whether an identity is set.
// INVARIANT: Session fields are not mutated
func (s Session) LoggedIn() bool {
	return s.Username != ""
}

// Set replaces the current session with the given identity.
// PRE: username is non-empty
// POST: session holds the new identity, or is unchanged on error
func (s *Session) Set(username, role string) error {
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if !isValidRole(role) {
		return ErrInvalidRole
	}
	s.Username = username
	s.Role = role
	return nil
}

// Clear logs the session out. Idempotent; safe to call when already logged out.
// POST: session is the zero value
func (s *Session) Clear() {
	*s = Session{}
}

// DashboardVariant identifies which dashboard a session sees.
type DashboardVariant string

const (
	DashboardNone    DashboardVariant = ""
	DashboardStudent DashboardVariant = "student"
	DashboardStaff   DashboardVariant = "staff"
)

// Visibility describes which UI surfaces a session may see. It is consumed
// by the render layer, which never inspects roles directly.
type Visibility struct {
	// Navigation
	ShowLoginRegister bool // login/register entry points
	ShowBookingNav    bool // "book a session" entry
	ShowStoriesNav    bool // "share your story" entry

	Dashboard DashboardVariant

	// Actions
	CanBookSession      bool
	CanShareStory       bool
	CanRegisterForEvent bool
	CanAddResource      bool // library additions
	CanManageEvents     bool // create/edit/delete events
	CanModerate         bool // approve/reject posts and bookings
}

// DeriveVisibility computes the visibility record for a session.
// Pure: identical sessions yield identical records.
// INVARIANT: when logged in, exactly one dashboard variant is active and the
// booking/stories nav set is the complement of the staff action set.
func DeriveVisibility(s Session) Visibility {
	if !s.LoggedIn() {
		return Visibility{ShowLoginRegister: true}
	}
	if s.Role == RoleStaff {
		return Visibility{
			Dashboard:       DashboardStaff,
			CanAddResource:  true,
			CanManageEvents: true,
			CanModerate:     true,
		}
	}
	return Visibility{
		ShowBookingNav:      true,
		ShowStoriesNav:      true,
		Dashboard:           DashboardStudent,
		CanBookSession:      true,
		CanShareStory:       true,
		CanRegisterForEvent: true,
	}
}

// Guarded actions.
const (
	ActionBookSession      = "book_session"
	ActionCancelBooking    = "cancel_booking"
	ActionDecideBooking    = "decide_booking"
	ActionShareStory       = "share_story"
	ActionModeratePost     = "moderate_post"
	ActionAddResource      = "add_resource"
	ActionManageEvents     = "manage_events"
	ActionRegisterForEvent = "register_for_event"
)

// studentActions are denied to staff: students book sessions with the
// wellness team, not the other way around.
var studentActions = map[string]string{
	ActionBookSession:      "Staff cannot book sessions. Students book sessions with you.",
	ActionCancelBooking:    "Staff cannot cancel student bookings from here.",
	ActionShareStory:       "Staff cannot share stories. You can moderate stories from your dashboard.",
	ActionRegisterForEvent: "Staff cannot register for events.",
}

// staffActions are denied to students.
var staffActions = map[string]string{
	ActionDecideBooking: "Only wellness team members can approve or reject bookings.",
	ActionModeratePost:  "Only wellness team members can moderate stories.",
	ActionAddResource:   "Only wellness team members can add library resources.",
	ActionManageEvents:  "Only wellness team members can manage events.",
}

// Guard checks whether the session may perform the named action.
// PRE: action is one of the Action constants
// POST: returns nil if allowed; ErrLoginRequired when logged out (the caller
// must surface the login prompt); *DeniedError with a displayable reason when
// the role forbids the action. Session state is never mutated.
func Guard(action string, s Session) error {
	if !s.LoggedIn() {
		return ErrLoginRequired
	}
	switch s.Role {
	case RoleStaff:
		if reason, ok := studentActions[action]; ok {
			return &DeniedError{Action: action, Role: RoleStaff, Reason: reason}
		}
	case RoleStudent:
		if reason, ok := staffActions[action]; ok {
			return &DeniedError{Action: action, Role: RoleStudent, Reason: reason}
		}
	default:
		return fmt.Errorf("unrecognised role %q", s.Role)
	}
	return nil
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
