package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category constants.
const (
	CategoryTraining  = "training"
	CategoryMatch     = "match"
	CategoryChallenge = "challenge"
)

// Venue type constants. VenueOther carries the free-text name when the
// type is "Other".
const (
	VenueMaryland = "Maryland"
	VenueTang     = "Tang"
	VenueOther    = "Other"
)

// Result constants, derived once at creation and never recomputed.
const (
	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

// Domain errors
var (
	ErrNoTeam          = errors.New("event must belong to a team")
	ErrInvalidCategory = errors.New("category must be 'training', 'match' or 'challenge'")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrMissingVenue    = errors.New("venue name is required when venue type is Other")
	ErrNoOpposition    = errors.New("opposition is required for match/challenge")
	ErrNegativeScore   = errors.New("scores cannot be negative")
)

// Event holds state for the concept: a scheduled training session, match
// or challenge belonging to one team. Match and challenge events
// additionally carry opposition and score fields.
type Event struct {
	ID         string
	TeamID     string
	Category   string
	Date       string // YYYY-MM-DD
	VenueType  string
	VenueOther string
	Venue      string // resolved display string, set at creation

	// match/challenge only
	Opposition string
	TeamGoals  int
	TeamPoints int
	OppGoals   int
	OppPoints  int
	Result     string // W/D/L

	CreatedAt time.Time
}

// Validate checks if the Event has valid data.
// PRE: Event struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Category is one of the three known values, Date parses as
// YYYY-MM-DD, matches carry an opposition and non-negative scores
func (e *Event) Validate() error {
	if e.TeamID == "" {
		return ErrNoTeam
	}
	switch e.Category {
	case CategoryTraining, CategoryMatch, CategoryChallenge:
	default:
		return ErrInvalidCategory
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.EqualFold(e.VenueType, VenueOther) && strings.TrimSpace(e.VenueOther) == "" && strings.TrimSpace(e.Venue) == "" {
		return ErrMissingVenue
	}
	if e.IsMatch() {
		if strings.TrimSpace(e.Opposition) == "" {
			return ErrNoOpposition
		}
		if e.TeamGoals < 0 || e.TeamPoints < 0 || e.OppGoals < 0 || e.OppPoints < 0 {
			return ErrNegativeScore
		}
	}
	return nil
}

// IsMatch returns true for categories that carry opposition and scores.
// INVARIANT: Category field is not mutated
func (e *Event) IsMatch() bool {
	return e.Category == CategoryMatch || e.Category == CategoryChallenge
}

// ResolveVenue computes the final venue display string from the venue
// fields and stores it on the event. Called once at creation.
// PRE: VenueType/VenueOther are populated from user input
// POST: Venue holds the resolved display string
func (e *Event) ResolveVenue() {
	if strings.EqualFold(e.VenueType, VenueOther) {
		e.Venue = strings.TrimSpace(e.VenueOther)
		return
	}
	e.Venue = strings.TrimSpace(e.VenueType)
}

// TotalScore converts a goals/points pair to a comparable total
// (goals are worth three points).
func TotalScore(goals, points int) int {
	return goals*3 + points
}

// CalcResult derives the W/D/L result from the two score totals.
// PRE: totals computed via TotalScore
// POST: Returns W when ours is strictly greater, L when strictly less, D otherwise
func CalcResult(teamTotal, oppTotal int) string {
	if teamTotal > oppTotal {
		return ResultWin
	}
	if teamTotal < oppTotal {
		return ResultLoss
	}
	return ResultDraw
}

// DeriveResult computes and stores the result from the event's own score
// fields. Called once at creation for match/challenge events.
// PRE: score fields are populated
// POST: Result holds W, D or L
func (e *Event) DeriveResult() {
	e.Result = CalcResult(TotalScore(e.TeamGoals, e.TeamPoints), TotalScore(e.OppGoals, e.OppPoints))
}

// ScoreLine renders the score in the "G-P vs G-P" display form.
func (e *Event) ScoreLine() string {
	return fmt.Sprintf("%d-%d vs %d-%d", e.TeamGoals, e.TeamPoints, e.OppGoals, e.OppPoints)
}

// CategoryLabel returns the human-readable category name used as a
// report column header. Unknown categories fall back to the raw value,
// or "Event" when blank.
func CategoryLabel(category string) string {
	switch strings.ToLower(category) {
	case CategoryTraining:
		return "Training"
	case CategoryMatch:
		return "Match"
	case CategoryChallenge:
		return "Challenge"
	}
	if category == "" {
		return "Event"
	}
	return category
}

// VenueLabel resolves the human-readable venue string for reports.
// Policy: a non-empty resolved venue string wins verbatim (trimmed);
// otherwise venue type "other" falls back to the free-text name,
// defaulting to the literal "Other"; otherwise the venue type itself,
// defaulting to "Other" when blank.
func VenueLabel(e Event) string {
	if v := strings.TrimSpace(e.Venue); v != "" {
		return v
	}
	if strings.EqualFold(e.VenueType, VenueOther) {
		if v := strings.TrimSpace(e.VenueOther); v != "" {
			return v
		}
		return VenueOther
	}
	if v := strings.TrimSpace(e.VenueType); v != "" {
		return v
	}
	return VenueOther
}
