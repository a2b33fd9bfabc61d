package event

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubroll/internal/adapters/storage"
	domain "clubroll/internal/domain/event"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const eventColumns = "id, team_id, category, date, venue_type, venue_other, venue, " +
	"opposition, team_goals, team_points, opp_goals, opp_points, result, created_at"

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM event WHERE id = ?", id)
	entity, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	return entity, err
}

// Save persists an Event to the database.
// PRE: entity has been validated, venue resolved and result derived
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{
		"id", "team_id", "category", "date", "venue_type", "venue_other", "venue",
		"opposition", "team_goals", "team_points", "opp_goals", "opp_points", "result", "created_at",
	}
	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	updates := []string{
		"category=excluded.category", "date=excluded.date",
		"venue_type=excluded.venue_type", "venue_other=excluded.venue_other", "venue=excluded.venue",
		"opposition=excluded.opposition",
		"team_goals=excluded.team_goals", "team_points=excluded.team_points",
		"opp_goals=excluded.opp_goals", "opp_points=excluded.opp_points",
		"result=excluded.result",
	}

	query := fmt.Sprintf(
		"INSERT INTO event (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.TeamID,
		entity.Category,
		entity.Date,
		entity.VenueType,
		entity.VenueOther,
		entity.Venue,
		entity.Opposition,
		entity.TeamGoals,
		entity.TeamPoints,
		entity.OppGoals,
		entity.OppPoints,
		entity.Result,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Event and its attendance records from the database.
// PRE: id is non-empty
// POST: Entity and dependent attendance rows are removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM attendance WHERE event_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// ListByTeamID retrieves a team's events in chronological order.
// PRE: teamID is non-empty
// POST: Returns events ordered by date ascending (created_at breaks
// same-day ties so report columns are stable)
func (s *SQLiteStore) ListByTeamID(ctx context.Context, teamID string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM event WHERE team_id = ? ORDER BY date ASC, created_at ASC",
		teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var entity domain.Event
	var createdStr string
	err := row.Scan(
		&entity.ID,
		&entity.TeamID,
		&entity.Category,
		&entity.Date,
		&entity.VenueType,
		&entity.VenueOther,
		&entity.Venue,
		&entity.Opposition,
		&entity.TeamGoals,
		&entity.TeamPoints,
		&entity.OppGoals,
		&entity.OppPoints,
		&entity.Result,
		&createdStr,
	)
	if err != nil {
		return domain.Event{}, err
	}
	entity.CreatedAt, err = storage.ParseTime(createdStr)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}
