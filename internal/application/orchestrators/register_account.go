package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mindbridge/internal/domain/account"

	"github.com/google/uuid"
)

// AccountStoreForRegister defines the store interface needed by RegisterAccount.
type AccountStoreForRegister interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterAccountInput carries input for the orchestrator.
type RegisterAccountInput struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	StudentID string
	Phone     string
}

// RegisterAccountDeps holds dependencies for RegisterAccount.
type RegisterAccountDeps struct {
	AccountStore AccountStoreForRegister
	// InstitutionalDomain, when set, restricts registration to emails on
	// that domain.
	InstitutionalDomain string
}

var (
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("an account with this email already exists")
)

// ExecuteRegisterAccount coordinates student self-registration.
// PRE: Valid username, email and password that meet their policies
// POST: Account created with Role=student and a hashed password
// INVARIANT: Username and email are unique
func ExecuteRegisterAccount(ctx context.Context, input RegisterAccountInput, deps RegisterAccountDeps) (string, error) {
	if err := account.ValidateUsername(input.Username); err != nil {
		return "", err
	}
	if err := account.ValidateInstitutionalEmail(input.Email, deps.InstitutionalDomain); err != nil {
		return "", err
	}
	if err := account.ValidatePasswordStrength(input.Password); err != nil {
		return "", err
	}

	if _, err := deps.AccountStore.GetByUsername(ctx, input.Username); err == nil {
		return "", ErrUsernameTaken
	}
	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrEmailTaken
	}

	// Self-registration always creates a student. Staff accounts are
	// provisioned by seeding.
	acct := account.Account{
		ID:        uuid.New().String(),
		Username:  input.Username,
		Email:     input.Email,
		Role:      account.RoleStudent,
		FullName:  input.FullName,
		StudentID: input.StudentID,
		Phone:     input.Phone,
		CreatedAt: time.Now(),
	}

	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "account_registered", "username", acct.Username)
	return acct.ID, nil
}
