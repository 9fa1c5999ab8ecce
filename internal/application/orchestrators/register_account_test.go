package orchestrators

import (
	"context"
	"errors"
	"testing"

	"mindbridge/internal/domain/account"
)

// TestExecuteRegisterAccount_Valid tests a successful student registration.
func TestExecuteRegisterAccount_Valid(t *testing.T) {
	store := newMockAccountStore()
	id, err := ExecuteRegisterAccount(context.Background(), RegisterAccountInput{
		Username:  "jorja_w",
		Email:     "jorja@campus.edu",
		Password:  "Spring2026ok",
		FullName:  "Jorja Whitford",
		StudentID: "20240042",
		Phone:     "0214567890",
	}, RegisterAccountDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated account ID")
	}
	saved := store.accounts["jorja_w"]
	if saved.Role != account.RoleStudent {
		t.Errorf("expected role=student, got %s", saved.Role)
	}
	if saved.PasswordHash == "" || saved.PasswordHash == "Spring2026ok" {
		t.Error("expected hashed password")
	}
}

// TestExecuteRegisterAccount_UsernameTaken tests duplicate usernames are rejected.
func TestExecuteRegisterAccount_UsernameTaken(t *testing.T) {
	store := newMockAccountStore()
	seedStudent(t, store, "jorja_w", "Correct1Horse")

	_, err := ExecuteRegisterAccount(context.Background(), RegisterAccountInput{
		Username: "jorja_w",
		Email:    "other@campus.edu",
		Password: "Spring2026ok",
	}, RegisterAccountDeps{AccountStore: store})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

// TestExecuteRegisterAccount_EmailTaken tests duplicate emails are rejected.
func TestExecuteRegisterAccount_EmailTaken(t *testing.T) {
	store := newMockAccountStore()
	seedStudent(t, store, "jorja_w", "Correct1Horse")

	_, err := ExecuteRegisterAccount(context.Background(), RegisterAccountInput{
		Username: "someone_else",
		Email:    "jorja_w@campus.edu",
		Password: "Spring2026ok",
	}, RegisterAccountDeps{AccountStore: store})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// TestExecuteRegisterAccount_WeakPassword tests the password policy applies.
func TestExecuteRegisterAccount_WeakPassword(t *testing.T) {
	store := newMockAccountStore()
	_, err := ExecuteRegisterAccount(context.Background(), RegisterAccountInput{
		Username: "jorja_w",
		Email:    "jorja@campus.edu",
		Password: "alllowercase1",
	}, RegisterAccountDeps{AccountStore: store})
	if !errors.Is(err, account.ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
}

// TestExecuteRegisterAccount_InstitutionalDomain tests the optional email
// domain restriction.
func TestExecuteRegisterAccount_InstitutionalDomain(t *testing.T) {
	store := newMockAccountStore()
	deps := RegisterAccountDeps{AccountStore: store, InstitutionalDomain: "campus.edu"}

	_, err := ExecuteRegisterAccount(context.Background(), RegisterAccountInput{
		Username: "jorja_w",
		Email:    "jorja@gmail.com",
		Password: "Spring2026ok",
	}, deps)
	if !errors.Is(err, account.ErrNotInstitutional) {
		t.Fatalf("expected ErrNotInstitutional, got %v", err)
	}

	if _, err := ExecuteRegisterAccount(context.Background(), RegisterAccountInput{
		Username: "jorja_w",
		Email:    "jorja@campus.edu",
		Password: "Spring2026ok",
	}, deps); err != nil {
		t.Fatalf("institutional email rejected: %v", err)
	}
}
