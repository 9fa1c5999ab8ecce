package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"mindbridge/internal/domain/account"

	"github.com/google/uuid"
)

// SeedStaffInput carries credentials for the initial wellness-team account.
type SeedStaffInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// SeedStaffDeps holds dependencies for SeedStaff.
type SeedStaffDeps struct {
	AccountStore AccountStoreForRegister
}

// ExecuteSeedStaff ensures a wellness-team account exists. Safe to run on
// every startup; an existing username is left untouched.
// POST: A staff account with the given username exists
func ExecuteSeedStaff(ctx context.Context, input SeedStaffInput, deps SeedStaffDeps) error {
	if _, err := deps.AccountStore.GetByUsername(ctx, input.Username); err == nil {
		return nil
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Username:  input.Username,
		Email:     input.Email,
		Role:      account.RoleStaff,
		FullName:  input.FullName,
		CreatedAt: time.Now(),
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "staff_seeded", "username", acct.Username)
	return nil
}
