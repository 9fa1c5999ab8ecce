package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindbridge/internal/domain/account"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create("acct-1", "tane", account.RoleStudent)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	sess, ok := ss.Get(token)
	if !ok {
		t.Fatal("session not found")
	}
	if sess.AccountID != "acct-1" || sess.Username != "tane" || sess.Role != account.RoleStudent {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestSessionStore_ExpiredSessionRejected(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create("acct-1", "tane", account.RoleStudent)

	// Age the session past the 24 hour window.
	ss.mu.Lock()
	sess := ss.sessions[token]
	sess.CreatedAt = time.Now().Add(-25 * time.Hour)
	ss.sessions[token] = sess
	ss.mu.Unlock()

	if _, ok := ss.Get(token); ok {
		t.Error("expired session should not be returned")
	}
}

func TestSessionStore_Delete(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create("acct-1", "tane", account.RoleStudent)
	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("deleted session should not be returned")
	}
}

func TestAuthMiddleware_SetsSessionInContext(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create("acct-1", "mere", account.RoleStaff)

	var got Session
	var found bool
	handler := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("session not set in context")
	}
	if got.Username != "mere" || got.Role != account.RoleStaff {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestAuthMiddleware_NoCookiePassesThrough(t *testing.T) {
	ss := NewSessionStore()
	handler := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); ok {
			t.Error("unexpected session without cookie")
		}
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/dashboard", nil))

	if rr.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
}

func TestRequireRole_BlocksWrongRole(t *testing.T) {
	handler := RequireRole(account.RoleStaff)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/events/new", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{
		AccountID: "acct-1",
		Username:  "tane",
		Role:      account.RoleStudent,
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	handler := RequireRole(account.RoleStaff)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/events/new", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{
		AccountID: "acct-2",
		Username:  "mere",
		Role:      account.RoleStaff,
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}
