package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"mindbridge/internal/domain/event"

	"github.com/google/uuid"
)

// EventStoreForSave defines the store interface needed by CreateEvent and UpdateEvent.
type EventStoreForSave interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	Save(ctx context.Context, e event.Event) error
}

// CreateEventInput carries input for the orchestrator.
type CreateEventInput struct {
	Title           string
	Description     string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM
	EndTime         string // HH:MM
	Location        string
	OrganizerID     string
	MaxParticipants int
	ImageURL        string
}

// EventDeps holds dependencies for the event orchestrators.
type EventDeps struct {
	EventStore EventStoreForSave
}

// ExecuteCreateEvent coordinates creating a wellness event.
// PRE: OrganizerID is a staff account
// POST: Event created, active, with the default capacity when none given
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps EventDeps) (string, error) {
	e := event.Event{
		ID:              uuid.New().String(),
		Title:           input.Title,
		Description:     input.Description,
		Date:            input.Date,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Location:        input.Location,
		OrganizerID:     input.OrganizerID,
		MaxParticipants: input.MaxParticipants,
		ImageURL:        input.ImageURL,
		Active:          true,
		CreatedAt:       time.Now(),
	}
	if e.MaxParticipants == 0 {
		e.MaxParticipants = event.DefaultMaxParticipants
	}

	if err := e.Validate(); err != nil {
		return "", err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return "", err
	}

	slog.Info("event_event", "event", "event_created", "event_id", e.ID, "title", e.Title, "date", e.Date)
	return e.ID, nil
}

// UpdateEventInput carries input for the orchestrator. Zero-valued fields
// keep their stored values; Active is always applied.
type UpdateEventInput struct {
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

// ExecuteUpdateEvent applies staff edits to an existing event.
// PRE: event exists
// POST: Event fields updated and persisted
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps EventDeps) error {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return err
	}

	if input.Title != "" {
		e.Title = input.Title
	}
	if input.Description != "" {
		e.Description = input.Description
	}
	if input.Date != "" {
		e.Date = input.Date
	}
	if input.StartTime != "" {
		e.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		e.EndTime = input.EndTime
	}
	if input.Location != "" {
		e.Location = input.Location
	}
	if input.MaxParticipants > 0 {
		e.MaxParticipants = input.MaxParticipants
	}
	if input.ImageURL != "" {
		e.ImageURL = input.ImageURL
	}
	e.Active = input.Active
	e.UpdatedAt = time.Now()

	if err := e.Validate(); err != nil {
		return err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return err
	}

	slog.Info("event_event", "event", "event_updated", "event_id", e.ID)
	return nil
}
