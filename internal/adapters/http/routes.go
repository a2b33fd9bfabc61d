package web

import (
	"net/http"

	"clubroll/internal/adapters/http/middleware"
	accountDomain "clubroll/internal/domain/account"
	reportDomain "clubroll/internal/domain/report"
)

// registerRoutes attaches all application handlers to the mux.
// Handlers do their own method dispatch; role checks that apply to a
// whole route are wrapped here.
func registerRoutes(mux *http.ServeMux) {
	adminOnly := middleware.RequireRole(accountDomain.RoleAdmin)

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/me", handleMe)

	// Account administration
	mux.Handle("/accounts", adminOnly(http.HandlerFunc(handleAccounts)))

	// Teams and memberships
	mux.HandleFunc("/teams", handleTeams)
	mux.HandleFunc("/team", handleTeam)
	mux.HandleFunc("/team/invite", handleTeamInvite)

	// Rosters
	mux.HandleFunc("/players", handlePlayers)
	mux.HandleFunc("/players/import", handlePlayersImport)

	// Events and attendance sheets
	mux.HandleFunc("/events", handleEvents)
	mux.HandleFunc("/event", handleEventSheet)
	mux.HandleFunc("/attendance", handleAttendance)

	// Report downloads
	mux.HandleFunc("/export/report.xlsx", handleReportWorkbook)
	mux.HandleFunc("/export/matrix.csv", handleReportCSV(reportDomain.SheetMatrix))
	mux.HandleFunc("/export/reasons.csv", handleReportCSV(reportDomain.SheetReasons))

	// Operations
	mux.Handle("/perf", adminOnly(http.HandlerFunc(handlePerf)))
}
