package projections

import (
	"context"
	"testing"
	"time"

	"mindbridge/internal/domain/booking"
	"mindbridge/internal/domain/event"
	"mindbridge/internal/domain/session"
)

// mockDashboardEventStore extends the event mock with student registrations.
type mockDashboardEventStore struct {
	mockEventStore
}

var dashboardNow = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func dashboardDeps() GetDashboardDeps {
	events := &mockDashboardEventStore{}
	events.events = marchEvents()
	events.registrations = map[string][]event.Registration{
		"acc-1": {{ID: "r1", EventID: "ev-upcoming", StudentID: "acc-1"}},
	}
	return GetDashboardDeps{
		BookingStore: &mockBookingStore{bookings: []booking.Booking{
			{ID: "bk-1", StudentID: "acc-1", Date: "2024-03-20", Time: "10:00", Status: booking.StatusPending},
		}},
		EventStore: events,
		PostStore:  &mockPostStore{posts: storyFixtures()},
	}
}

// TestQueryGetDashboard_Student tests the student variant.
func TestQueryGetDashboard_Student(t *testing.T) {
	res, err := QueryGetDashboard(context.Background(), GetDashboardQuery{
		AccountID: "acc-1",
		Username:  "jorja_w",
		Role:      session.RoleStudent,
	}, dashboardDeps(), dashboardNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Variant != session.DashboardStudent {
		t.Errorf("Variant = %v", res.Variant)
	}
	if len(res.Bookings) != 1 {
		t.Errorf("expected 1 booking, got %d", len(res.Bookings))
	}
	if len(res.RegisteredEvents) != 1 || res.RegisteredEvents[0].ID != "ev-upcoming" {
		t.Errorf("registered events: %+v", res.RegisteredEvents)
	}
	if len(res.MyPosts) != 2 {
		t.Errorf("expected the author's 2 posts, got %d", len(res.MyPosts))
	}
	if !res.Visibility.CanBookSession || res.Visibility.CanManageEvents {
		t.Errorf("student visibility wrong: %+v", res.Visibility)
	}
}

// TestQueryGetDashboard_Staff tests the staff variant counts.
func TestQueryGetDashboard_Staff(t *testing.T) {
	res, err := QueryGetDashboard(context.Background(), GetDashboardQuery{
		AccountID: "acc-staff",
		Username:  "wellness_admin",
		Role:      session.RoleStaff,
	}, dashboardDeps(), dashboardNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Variant != session.DashboardStaff {
		t.Errorf("Variant = %v", res.Variant)
	}
	if res.PendingBookings != 1 {
		t.Errorf("PendingBookings = %d", res.PendingBookings)
	}
	if res.PendingPosts != 2 {
		t.Errorf("PendingPosts = %d", res.PendingPosts)
	}
	if res.UpcomingEvents != 1 {
		t.Errorf("UpcomingEvents = %d (only active future events count)", res.UpcomingEvents)
	}
	if !res.Visibility.CanModerate || res.Visibility.CanBookSession {
		t.Errorf("staff visibility wrong: %+v", res.Visibility)
	}
}

// TestQueryGetDashboard_InvalidRole tests unknown roles are rejected.
func TestQueryGetDashboard_InvalidRole(t *testing.T) {
	_, err := QueryGetDashboard(context.Background(), GetDashboardQuery{
		AccountID: "acc-1",
		Username:  "jorja_w",
		Role:      "admin",
	}, dashboardDeps(), dashboardNow)
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}
