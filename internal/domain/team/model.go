package team

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength   = 100
	MaxSeasonLength = 40
	MaxNotesLength  = 4000
)

// Membership role constants.
const (
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

// Domain errors
var (
	ErrEmptyName      = errors.New("team name cannot be empty")
	ErrInvalidRole    = errors.New("membership role must be 'admin' or 'coach'")
	ErrAlreadyMember  = errors.New("account is already a member of this team")
	ErrMemberNotFound = errors.New("account is not a member of this team")
)

// Team holds state for the concept. A team is the tenant boundary:
// players, events and attendance records all belong to exactly one team.
type Team struct {
	ID        string
	Name      string
	Season    string
	Notes     string // markdown, rendered at the edge
	CreatedAt time.Time
}

// Validate checks if the Team has valid data.
// PRE: Team struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty and must fit the length limits
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return errors.New("team name cannot exceed 100 characters")
	}
	if len(t.Season) > MaxSeasonLength {
		return errors.New("season label cannot exceed 40 characters")
	}
	if len(t.Notes) > MaxNotesLength {
		return errors.New("team notes cannot exceed 4000 characters")
	}
	return nil
}

// Membership links an account to a team with a role.
// One row per (team, account) pair.
type Membership struct {
	TeamID    string
	AccountID string
	Role      string
	CreatedAt time.Time
}

// Validate checks if the Membership has valid data.
// PRE: Membership struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: TeamID and AccountID must be set, Role must be admin or coach
func (m *Membership) Validate() error {
	if m.TeamID == "" {
		return errors.New("membership must reference a team")
	}
	if m.AccountID == "" {
		return errors.New("membership must reference an account")
	}
	if m.Role != RoleAdmin && m.Role != RoleCoach {
		return ErrInvalidRole
	}
	return nil
}

// IsAdmin returns true if the membership carries the admin role.
// INVARIANT: Role field is not mutated
func (m *Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}
