package projections

import (
	"context"
	"time"

	"mindbridge/internal/domain/booking"
	"mindbridge/internal/domain/event"
	"mindbridge/internal/domain/post"
	"mindbridge/internal/domain/session"
)

// DashboardBookingStore defines the booking store interface needed by the
// dashboard projection.
type DashboardBookingStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]booking.Booking, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// DashboardEventStore defines the event store interface needed by the
// dashboard projection.
type DashboardEventStore interface {
	List(ctx context.Context) ([]event.Event, error)
	ListRegistrationsByStudent(ctx context.Context, studentID string) ([]event.Registration, error)
}

// DashboardPostStore defines the post store interface needed by the
// dashboard projection.
type DashboardPostStore interface {
	ListByAuthor(ctx context.Context, authorID string) ([]post.Post, error)
	CountPending(ctx context.Context) (int, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	AccountID string
	Username  string
	Role      string // student or staff
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	BookingStore DashboardBookingStore
	EventStore   DashboardEventStore
	PostStore    DashboardPostStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Variant    session.DashboardVariant
	Visibility session.Visibility

	// Student
	Bookings         []booking.Booking
	RegisteredEvents []event.Event
	MyPosts          []post.Post

	// Staff
	PendingBookings int
	PendingPosts    int
	UpcomingEvents  int
}

// QueryGetDashboard aggregates dashboard data based on the user's role.
// PRE: the caller is logged in
// POST: student variants carry the student's own records; staff variants
// carry moderation and review counts
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	var sess session.Session
	if err := sess.Set(query.Username, query.Role); err != nil {
		return DashboardResult{}, err
	}
	vis := session.DeriveVisibility(sess)
	result := DashboardResult{Variant: vis.Dashboard, Visibility: vis}

	switch query.Role {
	case session.RoleStaff:
		if n, err := deps.BookingStore.CountByStatus(ctx, booking.StatusPending); err == nil {
			result.PendingBookings = n
		}
		if n, err := deps.PostStore.CountPending(ctx); err == nil {
			result.PendingPosts = n
		}
		if events, err := deps.EventStore.List(ctx); err == nil {
			today := now.Format(event.DateLayout)
			for _, e := range events {
				if e.Active && e.IsUpcoming(today) {
					result.UpcomingEvents++
				}
			}
		}

	case session.RoleStudent:
		if bookings, err := deps.BookingStore.ListByStudent(ctx, query.AccountID); err == nil {
			result.Bookings = bookings
		}
		if posts, err := deps.PostStore.ListByAuthor(ctx, query.AccountID); err == nil {
			result.MyPosts = posts
		}
		regs, err := deps.EventStore.ListRegistrationsByStudent(ctx, query.AccountID)
		if err == nil && len(regs) > 0 {
			registered := make(map[string]bool, len(regs))
			for _, r := range regs {
				registered[r.EventID] = true
			}
			if events, err := deps.EventStore.List(ctx); err == nil {
				for _, e := range events {
					if registered[e.ID] {
						result.RegisteredEvents = append(result.RegisteredEvents, e)
					}
				}
			}
		}
	}

	return result, nil
}
