package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"mindbridge/internal/adapters/http/middleware"
	"mindbridge/internal/application/orchestrators"
	"mindbridge/internal/application/projections"
	"mindbridge/internal/domain/calendar"
	postDomain "mindbridge/internal/domain/post"
	sessionDomain "mindbridge/internal/domain/session"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// institutionalDomain, when set, restricts registration to emails on that
// domain. Blank disables the check.
var institutionalDomain string

// SetInstitutionalDomain configures the registration email domain check.
func SetInstitutionalDomain(domain string) {
	institutionalDomain = domain
}

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// domainSession builds the domain session for the request. Anonymous
// requests yield the zero session.
func domainSession(r *http.Request) sessionDomain.Session {
	var s sessionDomain.Session
	if ms, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if err := s.Set(ms.Username, ms.Role); err != nil {
			// Stored sessions always carry a valid role; a failure here
			// means the store was tampered with, so treat as logged out.
			s.Clear()
		}
	}
	return s
}

// denyGuard checks the action against the current session and writes the
// rejection response when the action is not allowed. Returns true if the
// request was blocked.
func denyGuard(w http.ResponseWriter, r *http.Request, action string) bool {
	err := sessionDomain.Guard(action, domainSession(r))
	if err == nil {
		return false
	}
	if errors.Is(err, sessionDomain.ErrLoginRequired) {
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		} else {
			http.Error(w, "login required", http.StatusUnauthorized)
		}
		return true
	}
	http.Error(w, err.Error(), http.StatusForbidden)
	return true
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess := domainSession(r)
	vis := sessionDomain.DeriveVisibility(sess)

	funcMap := template.FuncMap{
		"currentRole":     func() string { return sess.Role },
		"currentUsername": func() string { return sess.Username },
		"isLoggedIn":      func() bool { return sess.LoggedIn() },
		"visibility":      func() sessionDomain.Visibility { return vis },
		"csrfToken":       func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"categoryLabel": postDomain.CategoryLabel,
		"formatClock":   calendar.FormatClock,
		"timeRange":     calendar.FormatTimeRange,
		"add":           func(a, b int) int { return a + b },
		"sub":           func(a, b int) int { return a - b },
		"seq": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i
			}
			return s
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleHome handles GET /
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "home.html", map[string]any{})
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Username: r.FormValue("Username"),
			Password: r.FormValue("Password"),
		}

		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		// Create session
		token, err := sessions.Create(result.AccountID, result.Username, result.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleRegister handles GET (form) and POST (create account) for /register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "register.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		if r.FormValue("Password") != r.FormValue("ConfirmPassword") {
			renderTemplate(w, r, "register.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "Passwords do not match",
			})
			return
		}

		input := orchestrators.RegisterAccountInput{
			Username:  r.FormValue("Username"),
			Email:     r.FormValue("Email"),
			Password:  r.FormValue("Password"),
			FullName:  r.FormValue("FullName"),
			StudentID: r.FormValue("StudentID"),
			Phone:     r.FormValue("Phone"),
		}

		deps := orchestrators.RegisterAccountDeps{
			AccountStore:        stores.AccountStore,
			InstitutionalDomain: institutionalDomain,
		}

		accountID, err := orchestrators.ExecuteRegisterAccount(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "register.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		// Log the new student straight in
		token, err := sessions.Create(accountID, input.Username, "student")
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout. The cookie is always cleared, even
// when no server-side session matches it.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleDashboard handles GET /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ms, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		} else {
			http.Error(w, "login required", http.StatusUnauthorized)
		}
		return
	}

	query := projections.GetDashboardQuery{
		AccountID: ms.AccountID,
		Username:  ms.Username,
		Role:      ms.Role,
	}
	deps := projections.GetDashboardDeps{
		BookingStore: stores.BookingStore,
		EventStore:   stores.EventStore,
		PostStore:    stores.PostStore,
	}

	result, err := projections.QueryGetDashboard(r.Context(), query, deps, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		page := "dashboard_student.html"
		if result.Variant == sessionDomain.DashboardStaff {
			page = "dashboard_staff.html"
		}
		renderTemplate(w, r, page, result)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handlePerf handles GET /api/perf. Staff only: exposes request and query
// timings for the last 15 minutes.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !middleware.IsStaff(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	snap := perfCollector.Snapshot(timeNow().Add(-15*time.Minute), 10)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
