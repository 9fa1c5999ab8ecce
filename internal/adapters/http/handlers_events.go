package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"mindbridge/internal/adapters/http/middleware"
	"mindbridge/internal/application/orchestrators"
	"mindbridge/internal/application/projections"
	sessionDomain "mindbridge/internal/domain/session"
)

// handleEvents handles GET /events. Month and year select the calendar
// grid; date pins the list to a single day. Months are zero-based, matching
// the calendar domain.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	month := -1
	if v := q.Get("month"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			month = n
		}
	}
	year := 0
	if v := q.Get("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			year = n
		}
	}

	query := projections.GetEventsPageQuery{
		Month:        month,
		Year:         year,
		SelectedDate: q.Get("date"),
	}
	if ms, ok := middleware.GetSessionFromContext(r.Context()); ok && !middleware.IsStaff(r.Context()) {
		query.StudentID = ms.AccountID
	}
	deps := projections.GetEventsPageDeps{
		EventStore: stores.EventStore,
	}

	result, err := projections.QueryGetEventsPage(r.Context(), query, deps, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		prev := result.View
		prev.ChangeMonth(-1)
		next := result.View
		next.ChangeMonth(1)
		renderTemplate(w, r, "events.html", map[string]any{
			"View":      result.View,
			"Prev":      prev,
			"Next":      next,
			"Title":     result.Title,
			"Cells":     result.Cells,
			"Events":    result.Events,
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleSaveEvent handles POST /events/save. An empty EventID creates; a
// set one updates.
func handleSaveEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if denyGuard(w, r, sessionDomain.ActionManageEvents) {
		return
	}
	ms, _ := middleware.GetSessionFromContext(r.Context())

	isForm := strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
	if isForm {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
	}

	eventID := r.FormValue("EventID")
	if !isForm {
		var body struct {
			EventID         string
			Title           string
			Description     string
			Date            string
			StartTime       string
			EndTime         string
			Location        string
			MaxParticipants int
			ImageURL        string
			Active          bool
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if body.EventID == "" {
			input := orchestrators.CreateEventInput{
				Title:           body.Title,
				Description:     body.Description,
				Date:            body.Date,
				StartTime:       body.StartTime,
				EndTime:         body.EndTime,
				Location:        body.Location,
				OrganizerID:     ms.AccountID,
				MaxParticipants: body.MaxParticipants,
				ImageURL:        body.ImageURL,
			}
			if _, err := orchestrators.ExecuteCreateEvent(r.Context(), input, orchestrators.EventDeps{EventStore: stores.EventStore}); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		} else {
			input := orchestrators.UpdateEventInput{
				EventID:         body.EventID,
				Title:           body.Title,
				Description:     body.Description,
				Date:            body.Date,
				StartTime:       body.StartTime,
				EndTime:         body.EndTime,
				Location:        body.Location,
				MaxParticipants: body.MaxParticipants,
				ImageURL:        body.ImageURL,
				Active:          body.Active,
			}
			if err := orchestrators.ExecuteUpdateEvent(r.Context(), input, orchestrators.EventDeps{EventStore: stores.EventStore}); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	maxParticipants := 0
	if v := r.FormValue("MaxParticipants"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxParticipants = n
		}
	}

	if eventID == "" {
		input := orchestrators.CreateEventInput{
			Title:           r.FormValue("Title"),
			Description:     r.FormValue("Description"),
			Date:            r.FormValue("Date"),
			StartTime:       r.FormValue("StartTime"),
			EndTime:         r.FormValue("EndTime"),
			Location:        r.FormValue("Location"),
			OrganizerID:     ms.AccountID,
			MaxParticipants: maxParticipants,
			ImageURL:        r.FormValue("ImageURL"),
		}
		if _, err := orchestrators.ExecuteCreateEvent(r.Context(), input, orchestrators.EventDeps{EventStore: stores.EventStore}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		input := orchestrators.UpdateEventInput{
			EventID:         eventID,
			Title:           r.FormValue("Title"),
			Description:     r.FormValue("Description"),
			Date:            r.FormValue("Date"),
			StartTime:       r.FormValue("StartTime"),
			EndTime:         r.FormValue("EndTime"),
			Location:        r.FormValue("Location"),
			MaxParticipants: maxParticipants,
			ImageURL:        r.FormValue("ImageURL"),
			Active:          r.FormValue("Active") == "true" || r.FormValue("Active") == "on",
		}
		if err := orchestrators.ExecuteUpdateEvent(r.Context(), input, orchestrators.EventDeps{EventStore: stores.EventStore}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// handleDeleteEvent handles POST /events/delete. Registrations go with the
// event.
func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if denyGuard(w, r, sessionDomain.ActionManageEvents) {
		return
	}

	var input orchestrators.DeleteEventInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.EventID = r.FormValue("EventID")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.DeleteEventDeps{EventStore: stores.EventStore}
	if err := orchestrators.ExecuteDeleteEvent(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// eventRegistrationInput extracts the event ID from a form or JSON body.
func eventRegistrationInput(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return "", err
		}
		return r.FormValue("EventID"), nil
	}
	var body struct {
		EventID string
	}
	if err := strictDecode(r, &body); err != nil {
		return "", err
	}
	return body.EventID, nil
}

// handleRegisterForEvent handles POST /events/register
func handleRegisterForEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if denyGuard(w, r, sessionDomain.ActionRegisterForEvent) {
		return
	}
	ms, _ := middleware.GetSessionFromContext(r.Context())

	eventID, err := eventRegistrationInput(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input := orchestrators.RegisterForEventInput{EventID: eventID, StudentID: ms.AccountID}
	deps := orchestrators.RegistrationDeps{EventStore: stores.EventStore}
	if err := orchestrators.ExecuteRegisterForEvent(r.Context(), input, deps); err != nil {
		if errors.Is(err, orchestrators.ErrEventFull) || errors.Is(err, orchestrators.ErrAlreadyRegistered) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleUnregisterFromEvent handles POST /events/unregister
func handleUnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if denyGuard(w, r, sessionDomain.ActionRegisterForEvent) {
		return
	}
	ms, _ := middleware.GetSessionFromContext(r.Context())

	eventID, err := eventRegistrationInput(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input := orchestrators.RegisterForEventInput{EventID: eventID, StudentID: ms.AccountID}
	deps := orchestrators.RegistrationDeps{EventStore: stores.EventStore}
	if err := orchestrators.ExecuteUnregisterFromEvent(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}
