package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubroll/internal/adapters/http/middleware"
	accountStore "clubroll/internal/adapters/storage/account"
	teamStore "clubroll/internal/adapters/storage/team"
	"clubroll/internal/application/orchestrators"
	"clubroll/internal/application/projections"
	accountDomain "clubroll/internal/domain/account"
	playerDomain "clubroll/internal/domain/player"
	reportDomain "clubroll/internal/domain/report"
	teamDomain "clubroll/internal/domain/team"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// listFilterFromQuery reads limit/offset pagination params.
func listFilterFromQuery(r *http.Request) accountStore.ListFilter {
	var f accountStore.ListFilter
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			f.Offset = n
		}
	}
	return f
}

// requireSession pulls the session from context, writing 401 when absent.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	return sess, true
}

// canAccessTeam reports whether the session may see the team: global
// admins always, everyone else only with a membership.
func canAccessTeam(r *http.Request, sess middleware.Session, teamID string) bool {
	if sess.Role == accountDomain.RoleAdmin {
		return true
	}
	_, err := stores.TeamStore.GetMembership(r.Context(), teamID, sess.AccountID)
	return err == nil
}

// isTeamAdmin reports whether the session administers the team.
func isTeamAdmin(r *http.Request, sess middleware.Session, teamID string) bool {
	if sess.Role == accountDomain.RoleAdmin {
		return true
	}
	m, err := stores.TeamStore.GetMembership(r.Context(), teamID, sess.AccountID)
	return err == nil && m.IsAdmin()
}

// handleLogin handles POST /login: authenticates and sets the session cookie.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.LoginInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.LoginDeps{AccountStore: stores.AccountStore}
	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, map[string]string{
		"account_id": result.AccountID,
		"email":      result.Email,
		"role":       result.Role,
	})
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie("clubroll_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleMe handles GET /me: returns the current session identity.
func handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]string{
		"account_id": sess.AccountID,
		"email":      sess.Email,
		"role":       sess.Role,
	})
}

// handleAccounts handles GET (list) and POST (create) for /accounts. Admin only.
func handleAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		accounts, err := stores.AccountStore.List(ctx, listFilterFromQuery(r))
		if err != nil {
			internalError(w, err)
			return
		}
		type accountRow struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			Role      string `json:"role"`
			CreatedAt string `json:"created_at"`
		}
		rows := make([]accountRow, 0, len(accounts))
		for _, a := range accounts {
			rows = append(rows, accountRow{
				ID:        a.ID,
				Email:     a.Email,
				Role:      a.Role,
				CreatedAt: a.CreatedAt.Format(time.RFC3339),
			})
		}
		writeJSON(w, rows)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.CreateAccountInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		deps := orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore}
		id, err := orchestrators.ExecuteCreateAccount(ctx, input, deps)
		if err != nil {
			if errors.Is(err, orchestrators.ErrEmailAlreadyExists) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": id})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleTeams handles GET (list for the session) and POST (create) for /teams.
func handleTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if r.Method == "GET" {
		var (
			teams []teamDomain.Team
			err   error
		)
		if sess.Role == accountDomain.RoleAdmin {
			teams, err = stores.TeamStore.List(ctx, teamStore.ListFilter{})
		} else {
			teams, err = stores.TeamStore.ListByAccountID(ctx, sess.AccountID)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, teams)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.CreateTeamInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.CreatorID = sess.AccountID

		deps := orchestrators.CreateTeamDeps{TeamStore: stores.TeamStore}
		id, err := orchestrators.ExecuteCreateTeam(ctx, input, deps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": id})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleTeam handles GET /team?id=: the team overview projection.
func handleTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	teamID := r.URL.Query().Get("id")
	if teamID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	if !canAccessTeam(r, sess, teamID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	query := projections.GetTeamOverviewQuery{TeamID: teamID}
	deps := projections.GetTeamOverviewDeps{
		TeamStore:   stores.TeamStore,
		PlayerStore: stores.PlayerStore,
		EventStore:  stores.EventStore,
	}
	result, err := projections.QueryGetTeamOverview(r.Context(), query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleTeamInvite handles POST /team/invite: adds a coach to a team.
func handleTeamInvite(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	input := orchestrators.InviteCoachInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !isTeamAdmin(r, sess, input.TeamID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	deps := orchestrators.InviteCoachDeps{
		AccountStore: stores.AccountStore,
		TeamStore:    stores.TeamStore,
		EmailSender:  emailSender,
	}
	result, err := orchestrators.ExecuteInviteCoach(r.Context(), input, deps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"account_id":      result.AccountID,
		"account_created": result.AccountCreated,
	})
}

// handlePlayers handles GET (roster), POST (add) and DELETE for /players.
func handlePlayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if r.Method == "GET" {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "missing team_id", http.StatusBadRequest)
			return
		}
		if !canAccessTeam(r, sess, teamID) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		players, err := stores.PlayerStore.ListByTeamID(ctx, teamID)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, players)
		return
	}

	if r.Method == "POST" {
		var input struct {
			TeamID string
			Name   string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if !canAccessTeam(r, sess, input.TeamID) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		p := playerDomain.Player{
			ID:        generateID(),
			TeamID:    input.TeamID,
			Name:      playerDomain.NormalizeName(input.Name),
			CreatedAt: timeNow(),
		}
		if err := p.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.PlayerStore.Save(ctx, p); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": p.ID})
		return
	}

	if r.Method == "DELETE" {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}
		p, err := stores.PlayerStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		if !canAccessTeam(r, sess, p.TeamID) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err := stores.PlayerStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handlePlayersImport handles POST /players/import: bulk roster paste.
func handlePlayersImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	input := orchestrators.ImportPlayersInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !canAccessTeam(r, sess, input.TeamID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	deps := orchestrators.ImportPlayersDeps{
		PlayerStore: stores.PlayerStore,
		TeamStore:   stores.TeamStore,
	}
	result, err := orchestrators.ExecuteImportPlayers(r.Context(), input, deps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]int{"added": result.Added, "skipped": result.Skipped})
}

// handleEvents handles GET (list by team) and POST (create) for /events.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if r.Method == "GET" {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "missing team_id", http.StatusBadRequest)
			return
		}
		if !canAccessTeam(r, sess, teamID) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		events, err := stores.EventStore.ListByTeamID(ctx, teamID)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, events)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.CreateEventInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if !canAccessTeam(r, sess, input.TeamID) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		deps := orchestrators.CreateEventDeps{
			EventStore: stores.EventStore,
			TeamStore:  stores.TeamStore,
		}
		id, err := orchestrators.ExecuteCreateEvent(ctx, input, deps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": id})
		return
	}

	if r.Method == "DELETE" {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}
		e, err := stores.EventStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		if !canAccessTeam(r, sess, e.TeamID) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err := stores.EventStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleEventSheet handles GET /event?id=: the attendance sheet projection.
func handleEventSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	eventID := r.URL.Query().Get("id")
	if eventID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	e, err := stores.EventStore.GetByID(r.Context(), eventID)
	if err != nil {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if !canAccessTeam(r, sess, e.TeamID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	query := projections.GetEventSheetQuery{EventID: eventID}
	deps := projections.GetEventSheetDeps{
		EventStore:      stores.EventStore,
		PlayerStore:     stores.PlayerStore,
		AttendanceStore: stores.AttendanceStore,
	}
	result, err := projections.QueryGetEventSheet(r.Context(), query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleAttendance handles POST /attendance: saves an event's sheet.
func handleAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	input := orchestrators.RecordAttendanceInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	e, err := stores.EventStore.GetByID(r.Context(), input.EventID)
	if err != nil {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if !canAccessTeam(r, sess, e.TeamID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	deps := orchestrators.RecordAttendanceDeps{
		EventStore:      stores.EventStore,
		AttendanceStore: stores.AttendanceStore,
	}
	saved, err := orchestrators.ExecuteRecordAttendance(r.Context(), input, deps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]int{"saved": saved})
}

// teamReport runs the report projection with access checks shared by the
// download handlers. Returns false when a response was already written.
func teamReport(w http.ResponseWriter, r *http.Request) (projections.TeamReportResult, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return projections.TeamReportResult{}, false
	}

	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		http.Error(w, "missing team_id", http.StatusBadRequest)
		return projections.TeamReportResult{}, false
	}
	if !canAccessTeam(r, sess, teamID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return projections.TeamReportResult{}, false
	}

	query := projections.GetTeamReportQuery{TeamID: teamID}
	deps := projections.GetTeamReportDeps{
		TeamStore:       stores.TeamStore,
		PlayerStore:     stores.PlayerStore,
		EventStore:      stores.EventStore,
		AttendanceStore: stores.AttendanceStore,
	}
	result, err := projections.QueryGetTeamReport(r.Context(), query, deps)
	if err != nil {
		if errors.Is(err, reportDomain.ErrNoEvents) || errors.Is(err, reportDomain.ErrNoPlayers) {
			http.Error(w, err.Error(), http.StatusConflict)
			return projections.TeamReportResult{}, false
		}
		internalError(w, err)
		return projections.TeamReportResult{}, false
	}
	return result, true
}

// handleReportWorkbook handles GET /export/report.xlsx?team_id=:
// a two-sheet workbook with the attendance matrix and reasons-missing reports.
func handleReportWorkbook(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result, ok := teamReport(w, r)
	if !ok {
		return
	}

	filename := reportDomain.ExportFilename(result.TeamName, "_Attendance.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := reportDomain.WriteWorkbook(w, result.Sheets()); err != nil {
		slog.Error("internal_error", "error", err.Error())
	}
}

// handleReportCSV serves a single report sheet as CSV; which one depends
// on the registered path.
func handleReportCSV(sheet string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		result, ok := teamReport(w, r)
		if !ok {
			return
		}

		rs := result.Matrix
		suffix := "_Matrix.csv"
		if sheet == reportDomain.SheetReasons {
			rs = result.Reasons
			suffix = "_Reasons.csv"
		}

		data, err := rs.CSV()
		if err != nil {
			internalError(w, err)
			return
		}

		filename := reportDomain.ExportFilename(result.TeamName, suffix)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(data)
	}
}

// handlePerf handles GET /perf: timing snapshot for admins.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	windowMin := 15
	if v := r.URL.Query().Get("window"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			windowMin = n
		}
	}
	snap := perfCollector.Snapshot(timeNow().Add(-time.Duration(windowMin)*time.Minute), 20)
	writeJSON(w, snap)
}
