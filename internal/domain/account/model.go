package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength    = 254
	MaxUsernameLength = 150
	MinUsernameLength = 3
	MinPasswordLength = 8
	MinStudentIDLen   = 5
)

// Role constants
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleStudent, RoleStaff}

// Domain errors
var (
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrUsernameTooShort  = errors.New("username must be at least 3 characters")
	ErrInvalidUsername   = errors.New("username may only contain letters, digits and underscores")
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrInvalidEmail      = errors.New("email must contain '@'")
	ErrNotInstitutional  = errors.New("email must use the institutional domain")
	ErrInvalidRole       = errors.New("role must be one of: student, staff")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordTooWeak   = errors.New("password must contain an uppercase letter, a lowercase letter and a digit")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrInvalidPhone      = errors.New("phone number must be 10 to 11 digits")
	ErrStudentIDTooShort = errors.New("student ID must be at least 5 characters")
	ErrAccountLocked     = errors.New("account is temporarily locked")
)

// Account holds state for a registered user. Role decides which parts of
// the product the user can reach; there is no separate admin tier.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	FullName     string
	StudentID    string
	Phone        string
	CreatedAt    time.Time
	FailedLogins int
	LockedUntil  time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if err := ValidateUsername(a.Username); err != nil {
		return err
	}
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if !isValidRole(a.Role) {
		return ErrInvalidRole
	}
	if a.Phone != "" {
		if err := ValidatePhone(a.Phone); err != nil {
			return err
		}
	}
	if a.StudentID != "" && len(strings.TrimSpace(a.StudentID)) < MinStudentIDLen {
		return ErrStudentIDTooShort
	}
	return nil
}

// ValidateUsername checks the username shape.
// POST: Returns nil if valid, error otherwise
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > MaxUsernameLength {
		return errors.New("username cannot exceed 150 characters")
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return ErrInvalidUsername
		}
	}
	return nil
}

// ValidatePhone accepts 10 or 11 digit phone numbers, ignoring spaces
// and dashes.
func ValidatePhone(phone string) error {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '+':
		default:
			return ErrInvalidPhone
		}
	}
	if digits < 10 || digits > 11 {
		return ErrInvalidPhone
	}
	return nil
}

// ValidatePasswordStrength enforces the password policy: at least 8
// characters with an uppercase letter, a lowercase letter and a digit.
// POST: Returns nil if the password meets the policy
func ValidatePasswordStrength(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	var upper, lower, digit bool
	for _, r := range plaintext {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrPasswordTooWeak
	}
	return nil
}

// ValidateInstitutionalEmail checks the email ends with the given domain.
// A blank domain disables the check.
func ValidateInstitutionalEmail(email, domain string) error {
	if domain == "" {
		return nil
	}
	if !strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain)) {
		return ErrNotInstitutional
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext meets the password policy
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if err := ValidatePasswordStrength(plaintext); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext))
	if err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the account is currently locked out.
// INVARIANT: Account fields are not mutated
func (a *Account) IsLocked() bool {
	if a.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(a.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the
// account after 5 failures.
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (a *Account) RecordFailedLogin() {
	a.FailedLogins++
	if a.FailedLogins >= 5 {
		a.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// POST: FailedLogins is 0, LockedUntil is zero
func (a *Account) ResetFailedLogins() {
	a.FailedLogins = 0
	a.LockedUntil = time.Time{}
}

// IsStaff returns true if the account belongs to the wellness team.
// INVARIANT: Account fields are not mutated
func (a *Account) IsStaff() bool {
	return a.Role == RoleStaff
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
