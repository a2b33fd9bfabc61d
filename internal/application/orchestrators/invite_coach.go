package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubroll/internal/adapters/email"
	"clubroll/internal/domain/account"
	"clubroll/internal/domain/team"

	"github.com/google/uuid"
)

// AccountStoreForInvite defines the account store interface needed by InviteCoach.
type AccountStoreForInvite interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// TeamStoreForInvite defines the team store interface needed by InviteCoach.
type TeamStoreForInvite interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
	GetMembership(ctx context.Context, teamID, accountID string) (team.Membership, error)
	SaveMembership(ctx context.Context, m team.Membership) error
}

// InviteCoachInput carries input for the orchestrator.
type InviteCoachInput struct {
	TeamID string
	Email  string
	Role   string // team role, defaults to coach
}

// InviteCoachDeps holds dependencies for InviteCoach.
type InviteCoachDeps struct {
	AccountStore AccountStoreForInvite
	TeamStore    TeamStoreForInvite
	EmailSender  email.Sender
}

// InviteCoachResult reports what the invite did.
type InviteCoachResult struct {
	AccountID      string
	AccountCreated bool // true when a fresh account was provisioned
	TempPassword   string
}

// ExecuteInviteCoach adds a coach to a team, provisioning an account
// when none exists for the email, and sends an invite email.
// PRE: TeamID refers to an existing team; Email is non-empty
// POST: Account exists with a coach role; membership saved; invite sent
// INVARIANT: Inviting an existing member is idempotent
func ExecuteInviteCoach(ctx context.Context, input InviteCoachInput, deps InviteCoachDeps) (InviteCoachResult, error) {
	t, err := deps.TeamStore.GetByID(ctx, input.TeamID)
	if err != nil {
		return InviteCoachResult{}, fmt.Errorf("team lookup failed: %w", err)
	}

	role := input.Role
	if role == "" {
		role = team.RoleCoach
	}

	var result InviteCoachResult
	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		// No account yet: provision one with a temporary password that
		// the invite email carries.
		temp := uuid.New().String()
		acct = account.Account{
			ID:        uuid.New().String(),
			Email:     input.Email,
			Role:      account.RoleCoach,
			CreatedAt: time.Now(),
		}
		if err := acct.Validate(); err != nil {
			return InviteCoachResult{}, err
		}
		if err := acct.SetPassword(temp); err != nil {
			return InviteCoachResult{}, err
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return InviteCoachResult{}, err
		}
		result.AccountCreated = true
		result.TempPassword = temp
	}
	result.AccountID = acct.ID

	if _, err := deps.TeamStore.GetMembership(ctx, input.TeamID, acct.ID); err == nil {
		slog.Info("coach_invite_skipped", "team_id", input.TeamID, "email", input.Email, "reason", "already_member")
		return result, nil
	}

	m := team.Membership{
		TeamID:    input.TeamID,
		AccountID: acct.ID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := m.Validate(); err != nil {
		return InviteCoachResult{}, err
	}
	if err := deps.TeamStore.SaveMembership(ctx, m); err != nil {
		return InviteCoachResult{}, err
	}

	if deps.EmailSender != nil {
		req := email.SendRequest{
			To:      []string{input.Email},
			Subject: fmt.Sprintf("You've been added to %s", t.Name),
			HTML:    inviteBody(t.Name, result.AccountCreated, result.TempPassword),
		}
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			// Membership already saved; the invite can be re-sent.
			slog.Error("coach_invite_email_failed", "team_id", input.TeamID, "email", input.Email, "error", err)
		}
	}

	slog.Info("coach_invited", "team_id", input.TeamID, "email", input.Email, "role", role, "account_created", result.AccountCreated)
	return result, nil
}

func inviteBody(teamName string, created bool, tempPassword string) string {
	if created {
		return fmt.Sprintf(
			"<p>You've been added as a coach of <strong>%s</strong>.</p>"+
				"<p>An account was created for you. Sign in with this temporary password and change it:</p>"+
				"<p><code>%s</code></p>",
			teamName, tempPassword)
	}
	return fmt.Sprintf("<p>You've been added as a coach of <strong>%s</strong>. Sign in to see the team.</p>", teamName)
}
