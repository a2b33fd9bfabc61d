package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubroll/internal/adapters/storage"
	domain "clubroll/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const recordColumns = "id, event_id, team_id, player_id, status, reason, updated_at"

// GetByID retrieves a Record by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM attendance WHERE id = ?", id)
	entity, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("attendance record not found: %w", err)
	}
	return entity, err
}

// GetByEventAndPlayer retrieves the record for an (event, player) pair.
// PRE: eventID and playerID are non-empty
// POST: Returns the entity or sql.ErrNoRows wrapped if absent
func (s *SQLiteStore) GetByEventAndPlayer(ctx context.Context, eventID, playerID string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM attendance WHERE event_id = ? AND player_id = ?",
		eventID, playerID)
	entity, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("attendance record not found: %w", err)
	}
	return entity, err
}

// Save persists a Record, upserting on the (event, player) composite
// key so a pair can never accumulate duplicate rows.
// PRE: entity has been validated and normalized
// POST: Exactly one row exists for (event_id, player_id)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "event_id", "team_id", "player_id", "status", "reason", "updated_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"status=excluded.status", "reason=excluded.reason", "updated_at=excluded.updated_at"}

	query := fmt.Sprintf(
		"INSERT INTO attendance (%s) VALUES (%s) ON CONFLICT(event_id, player_id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.EventID,
		entity.TeamID,
		entity.PlayerID,
		entity.Status,
		entity.Reason,
		storage.FormatTime(entity.UpdatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Record from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance WHERE id = ?", id)
	return err
}

// ListByEventID retrieves all records for an event.
// PRE: eventID is non-empty
// POST: Returns records for the event
func (s *SQLiteStore) ListByEventID(ctx context.Context, eventID string) ([]domain.Record, error) {
	return s.list(ctx, "SELECT "+recordColumns+" FROM attendance WHERE event_id = ? ORDER BY player_id", eventID)
}

// ListByTeamID retrieves all records for a team, the snapshot the report
// builders consume.
// PRE: teamID is non-empty
// POST: Returns records for the team in a stable order
func (s *SQLiteStore) ListByTeamID(ctx context.Context, teamID string) ([]domain.Record, error) {
	return s.list(ctx, "SELECT "+recordColumns+" FROM attendance WHERE team_id = ? ORDER BY event_id, player_id", teamID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		entity, err := scanRecord(rows)
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

func scanRecord(row rowScanner) (domain.Record, error) {
	var entity domain.Record
	var updatedStr string
	err := row.Scan(
		&entity.ID,
		&entity.EventID,
		&entity.TeamID,
		&entity.PlayerID,
		&entity.Status,
		&entity.Reason,
		&updatedStr,
	)
	if err != nil {
		return domain.Record{}, err
	}
	entity.UpdatedAt, err = storage.ParseTime(updatedStr)
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return entity, nil
}
