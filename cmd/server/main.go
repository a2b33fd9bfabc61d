package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "clubroll/internal/adapters/email"
	web "clubroll/internal/adapters/http"
	"clubroll/internal/adapters/http/perf"
	"clubroll/internal/adapters/storage"
	accountStore "clubroll/internal/adapters/storage/account"
	attendanceStore "clubroll/internal/adapters/storage/attendance"
	eventStore "clubroll/internal/adapters/storage/event"
	playerStore "clubroll/internal/adapters/storage/player"
	teamStore "clubroll/internal/adapters/storage/team"
	"clubroll/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CLUBROLL_DB", "clubroll.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:    acctStore,
		TeamStore:       teamStore.NewSQLiteStore(timedDB),
		PlayerStore:     playerStore.NewSQLiteStore(timedDB),
		EventStore:      eventStore.NewSQLiteStore(timedDB),
		AttendanceStore: attendanceStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("CLUBROLL_ADMIN_EMAIL", "admin@clubroll.local")
	adminPassword := envOrDefault("CLUBROLL_ADMIN_PASSWORD", "change me before launch")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("CLUBROLL_RESEND_KEY")
	emailFrom := envOrDefault("CLUBROLL_RESEND_FROM", "ClubRoll <noreply@clubroll.app>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("CLUBROLL_ENV") == "production" {
			log.Println("WARNING: CLUBROLL_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set CLUBROLL_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + perf endpoint)
	mux := web.NewMux("static", stores, collector)

	// Start server
	addr := envOrDefault("CLUBROLL_ADDR", ":8080")
	log.Printf("ClubRoll %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("CLUBROLL_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
