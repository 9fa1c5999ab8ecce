package orchestrators

import (
	"context"
	"log/slog"

	"mindbridge/internal/domain/event"
)

// EventStoreForDelete defines the store interface needed by DeleteEvent.
type EventStoreForDelete interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	DeleteWithRegistrations(ctx context.Context, id string) error
}

// DeleteEventInput carries input for the orchestrator.
type DeleteEventInput struct {
	EventID string
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStoreForDelete
}

// ExecuteDeleteEvent removes an event together with its registrations.
// PRE: event exists
// POST: Event and all registrations removed atomically; existing
// registrants simply lose the event from their lists
func ExecuteDeleteEvent(ctx context.Context, input DeleteEventInput, deps DeleteEventDeps) error {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return err
	}
	if err := deps.EventStore.DeleteWithRegistrations(ctx, e.ID); err != nil {
		return err
	}
	slog.Info("event_event", "event", "event_deleted", "event_id", e.ID, "title", e.Title)
	return nil
}
