package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubroll/internal/domain/event"
	"clubroll/internal/domain/team"

	"github.com/google/uuid"
)

// EventStoreForCreate defines the event store interface needed by CreateEvent.
type EventStoreForCreate interface {
	Save(ctx context.Context, e event.Event) error
}

// TeamStoreForCreateEvent defines the team store interface needed by CreateEvent.
type TeamStoreForCreateEvent interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
}

// CreateEventInput carries input for the orchestrator.
type CreateEventInput struct {
	TeamID     string
	Category   string
	Date       string // YYYY-MM-DD
	VenueType  string
	VenueOther string

	// match/challenge only
	Opposition string
	TeamGoals  int
	TeamPoints int
	OppGoals   int
	OppPoints  int
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStoreForCreate
	TeamStore  TeamStoreForCreateEvent
}

// ExecuteCreateEvent creates a training, match or challenge event. The
// venue string and match result are resolved once here and stored.
// PRE: Input references an existing team and passes event validation
// POST: Event persisted with resolved venue; matches carry a W/D/L result
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (string, error) {
	if _, err := deps.TeamStore.GetByID(ctx, input.TeamID); err != nil {
		return "", fmt.Errorf("team lookup failed: %w", err)
	}

	e := event.Event{
		ID:         uuid.New().String(),
		TeamID:     input.TeamID,
		Category:   input.Category,
		Date:       input.Date,
		VenueType:  input.VenueType,
		VenueOther: input.VenueOther,
		CreatedAt:  time.Now(),
	}
	if e.IsMatch() {
		e.Opposition = input.Opposition
		e.TeamGoals = input.TeamGoals
		e.TeamPoints = input.TeamPoints
		e.OppGoals = input.OppGoals
		e.OppPoints = input.OppPoints
	}

	if err := e.Validate(); err != nil {
		return "", err
	}

	e.ResolveVenue()
	if e.IsMatch() {
		e.DeriveResult()
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return "", err
	}

	slog.Info("event_created", "event_id", e.ID, "team_id", e.TeamID, "category", e.Category, "date", e.Date, "venue", e.Venue)
	return e.ID, nil
}
