package team

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubroll/internal/adapters/storage"
	domain "clubroll/internal/domain/team"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new team Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const teamColumns = "id, name, season, notes, created_at"

// GetByID retrieves a Team by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Team, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+teamColumns+" FROM team WHERE id = ?", id)
	entity, err := scanTeam(row)
	if err == sql.ErrNoRows {
		return domain.Team{}, fmt.Errorf("team not found: %w", err)
	}
	return entity, err
}

// Save persists a Team to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Team) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "season", "notes", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "season=excluded.season", "notes=excluded.notes"}

	query := fmt.Sprintf(
		"INSERT INTO team (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Season,
		entity.Notes,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Team and its memberships from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM team_member WHERE team_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM team WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List retrieves teams ordered by name.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Team, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+teamColumns+" FROM team ORDER BY name COLLATE NOCASE LIMIT ? OFFSET ?",
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTeams(rows)
}

// ListByAccountID retrieves the teams an account is a member of, ordered
// by name.
// PRE: accountID is non-empty
// POST: Returns teams with a membership row for the account
func (s *SQLiteStore) ListByAccountID(ctx context.Context, accountID string) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.season, t.notes, t.created_at
		FROM team t
		JOIN team_member tm ON tm.team_id = t.id
		WHERE tm.account_id = ?
		ORDER BY t.name COLLATE NOCASE`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTeams(rows)
}

// SaveMembership persists a Membership row.
// PRE: m has been validated
// POST: Membership is persisted (insert or role update)
func (s *SQLiteStore) SaveMembership(ctx context.Context, m domain.Membership) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO team_member (team_id, account_id, role, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(team_id, account_id) DO UPDATE SET role=excluded.role`,
		m.TeamID, m.AccountID, m.Role, storage.FormatTime(m.CreatedAt))
	return err
}

// DeleteMembership removes a Membership row.
// PRE: teamID and accountID are non-empty
// POST: Membership for the pair is removed
func (s *SQLiteStore) DeleteMembership(ctx context.Context, teamID, accountID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM team_member WHERE team_id = ? AND account_id = ?", teamID, accountID)
	return err
}

// GetMembership retrieves the membership for a (team, account) pair.
// PRE: teamID and accountID are non-empty
// POST: Returns the membership or domain.ErrMemberNotFound
func (s *SQLiteStore) GetMembership(ctx context.Context, teamID, accountID string) (domain.Membership, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT team_id, account_id, role, created_at FROM team_member WHERE team_id = ? AND account_id = ?",
		teamID, accountID)

	var m domain.Membership
	var createdStr string
	err := row.Scan(&m.TeamID, &m.AccountID, &m.Role, &createdStr)
	if err == sql.ErrNoRows {
		return domain.Membership{}, domain.ErrMemberNotFound
	}
	if err != nil {
		return domain.Membership{}, err
	}
	m.CreatedAt, err = storage.ParseTime(createdStr)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return m, nil
}

// ListMemberships retrieves all memberships of a team.
// PRE: teamID is non-empty
// POST: Returns membership rows for the team
func (s *SQLiteStore) ListMemberships(ctx context.Context, teamID string) ([]domain.Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT team_id, account_id, role, created_at FROM team_member WHERE team_id = ?", teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var createdStr string
		if err := rows.Scan(&m.TeamID, &m.AccountID, &m.Role, &createdStr); err != nil {
			return nil, err
		}
		m.CreatedAt, err = storage.ParseTime(createdStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (domain.Team, error) {
	var entity domain.Team
	var createdStr string
	err := row.Scan(&entity.ID, &entity.Name, &entity.Season, &entity.Notes, &createdStr)
	if err != nil {
		return domain.Team{}, err
	}
	entity.CreatedAt, err = storage.ParseTime(createdStr)
	if err != nil {
		return domain.Team{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

func collectTeams(rows *sql.Rows) ([]domain.Team, error) {
	var results []domain.Team
	for rows.Next() {
		entity, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
