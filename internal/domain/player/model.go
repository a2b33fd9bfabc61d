package player

import (
	"errors"
	"strings"
	"time"
)

// MaxNameLength bounds user-editable player names.
const MaxNameLength = 100

// Domain errors
var (
	ErrEmptyName  = errors.New("player name cannot be empty")
	ErrNoTeam     = errors.New("player must belong to a team")
	ErrNameTooLng = errors.New("player name cannot exceed 100 characters")
)

// Player holds state for the concept. A player belongs to exactly one team.
type Player struct {
	ID        string
	TeamID    string
	Name      string
	CreatedAt time.Time
}

// Validate checks if the Player has valid data.
// PRE: Player struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty, TeamID must be set
func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return ErrNameTooLng
	}
	if p.TeamID == "" {
		return ErrNoTeam
	}
	return nil
}

// NormalizeName trims a display name and collapses internal whitespace.
// Import and create paths both run names through this so roster de-dupe
// is stable across paste formats.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
