package web

import "net/http"

// registerRoutes attaches every application handler to the mux. Auth is
// enforced per-handler via the session guard, not per-route.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleHome)

	// Accounts
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/dashboard", handleDashboard)

	// Counselling bookings
	mux.HandleFunc("/bookings", handleBookings)
	mux.HandleFunc("/bookings/cancel", handleCancelBooking)
	mux.HandleFunc("/bookings/decide", handleDecideBooking)

	// Wellness events
	mux.HandleFunc("/events", handleEvents)
	mux.HandleFunc("/events/save", handleSaveEvent)
	mux.HandleFunc("/events/delete", handleDeleteEvent)
	mux.HandleFunc("/events/register", handleRegisterForEvent)
	mux.HandleFunc("/events/unregister", handleUnregisterFromEvent)

	// Stories
	mux.HandleFunc("/stories", handleStories)
	mux.HandleFunc("/stories/moderate", handleModeratePost)

	// Library
	mux.HandleFunc("/library", handleLibrary)

	// Ops
	mux.HandleFunc("/api/perf", handlePerf)
}
