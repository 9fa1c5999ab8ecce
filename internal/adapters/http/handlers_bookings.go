package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"mindbridge/internal/adapters/http/middleware"
	"mindbridge/internal/application/orchestrators"
	"mindbridge/internal/application/projections"
	bookingDomain "mindbridge/internal/domain/booking"
	sessionDomain "mindbridge/internal/domain/session"
)

// handleBookings handles both GET (list) and POST (create) for /bookings
func handleBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method == "GET" {
		ms, ok := middleware.GetSessionFromContext(ctx)
		if !ok {
			if isHTML {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			} else {
				http.Error(w, "login required", http.StatusUnauthorized)
			}
			return
		}

		query := projections.GetBookingsQuery{}
		if middleware.IsStaff(ctx) {
			query.Staff = true
			query.Status = r.URL.Query().Get("status")
		} else {
			query.StudentID = ms.AccountID
		}
		deps := projections.GetBookingsDeps{
			BookingStore: stores.BookingStore,
		}

		items, err := projections.QueryGetBookings(ctx, query, deps, timeNow())
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTML {
			renderTemplate(w, r, "bookings.html", map[string]any{
				"Bookings":     items,
				"Staff":        query.Staff,
				"StatusFilter": query.Status,
				"SessionTypes": bookingDomain.ValidSessionTypes,
				"CSRFToken":    csrf.Token(r),
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
		return
	}

	if r.Method == "POST" {
		if denyGuard(w, r, sessionDomain.ActionBookSession) {
			return
		}
		ms, _ := middleware.GetSessionFromContext(ctx)

		input := orchestrators.CreateBookingInput{StudentID: ms.AccountID}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.FullName = r.FormValue("FullName")
			input.Email = r.FormValue("Email")
			input.Phone = r.FormValue("Phone")
			input.Date = r.FormValue("Date")
			input.Time = r.FormValue("Time")
			input.SessionType = r.FormValue("SessionType")
			input.Reason = r.FormValue("Reason")
			input.Notes = r.FormValue("Notes")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			// The session, not the request body, decides who books.
			input.StudentID = ms.AccountID
		}

		deps := orchestrators.CreateBookingDeps{
			BookingStore: stores.BookingStore,
			Now:          timeNow,
		}
		if _, err := orchestrators.ExecuteCreateBooking(ctx, input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isHTML {
			http.Redirect(w, r, "/bookings", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleCancelBooking handles POST /bookings/cancel
func handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if denyGuard(w, r, sessionDomain.ActionCancelBooking) {
		return
	}
	ms, _ := middleware.GetSessionFromContext(r.Context())

	var input orchestrators.CancelBookingInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.BookingID = r.FormValue("BookingID")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}
	input.StudentID = ms.AccountID

	deps := orchestrators.CancelBookingDeps{BookingStore: stores.BookingStore}
	if err := orchestrators.ExecuteCancelBooking(r.Context(), input, deps); err != nil {
		if errors.Is(err, orchestrators.ErrNotBookingOwner) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/bookings", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDecideBooking handles POST /bookings/decide (staff approve/reject)
func handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if denyGuard(w, r, sessionDomain.ActionDecideBooking) {
		return
	}

	var input orchestrators.DecideBookingInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.BookingID = r.FormValue("BookingID")
		input.Decision = r.FormValue("Decision")
		input.MeetLink = r.FormValue("MeetLink")
		input.StaffNotes = r.FormValue("StaffNotes")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.DecideBookingDeps{
		BookingStore: stores.BookingStore,
		EmailSender:  emailSender,
	}
	if err := orchestrators.ExecuteDecideBooking(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/bookings", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}
