package player

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubroll/internal/adapters/storage"
	domain "clubroll/internal/domain/player"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new player Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const playerColumns = "id, team_id, name, created_at"

// GetByID retrieves a Player by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Player, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM player WHERE id = ?", id)
	entity, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return domain.Player{}, fmt.Errorf("player not found: %w", err)
	}
	return entity, err
}

// Save persists a Player to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "team_id", "name", "created_at"}
	placeholders := []string{"?", "?", "?", "?"}
	updates := []string{"team_id=excluded.team_id", "name=excluded.name"}

	query := fmt.Sprintf(
		"INSERT INTO player (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.TeamID,
		entity.Name,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Player from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM player WHERE id = ?", id)
	return err
}

// ListByTeamID retrieves a team's roster ordered by display name,
// case-insensitively.
// PRE: teamID is non-empty
// POST: Returns players belonging to the team
func (s *SQLiteStore) ListByTeamID(ctx context.Context, teamID string) ([]domain.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+playerColumns+" FROM player WHERE team_id = ? ORDER BY name COLLATE NOCASE",
		teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Player
	for rows.Next() {
		entity, err := scanPlayer(rows)
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

func scanPlayer(row rowScanner) (domain.Player, error) {
	var entity domain.Player
	var createdStr string
	err := row.Scan(&entity.ID, &entity.TeamID, &entity.Name, &createdStr)
	if err != nil {
		return domain.Player{}, err
	}
	entity.CreatedAt, err = storage.ParseTime(createdStr)
	if err != nil {
		return domain.Player{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}
