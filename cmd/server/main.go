package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"

	emailPkg "mindbridge/internal/adapters/email"
	web "mindbridge/internal/adapters/http"
	"mindbridge/internal/adapters/http/perf"
	"mindbridge/internal/adapters/storage"
	accountStore "mindbridge/internal/adapters/storage/account"
	bookingStore "mindbridge/internal/adapters/storage/booking"
	eventStore "mindbridge/internal/adapters/storage/event"
	libraryStore "mindbridge/internal/adapters/storage/library"
	postStore "mindbridge/internal/adapters/storage/post"
	"mindbridge/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	setupLogging()

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("MINDBRIDGE_DB", "mindbridge.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	bkStore := bookingStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore: acctStore,
		BookingStore: bkStore,
		EventStore:   eventStore.NewSQLiteStore(timedDB),
		PostStore:    postStore.NewSQLiteStore(timedDB),
		BookStore:    libraryStore.NewSQLiteStore(timedDB),
	}

	// Seed the wellness-team account on every startup (idempotent)
	seedInput := orchestrators.SeedStaffInput{
		Username: envOrDefault("MINDBRIDGE_STAFF_USERNAME", "wellness_team"),
		Email:    envOrDefault("MINDBRIDGE_STAFF_EMAIL", "wellness@mindbridge.example"),
		Password: envOrDefault("MINDBRIDGE_STAFF_PASSWORD", "ChangeMe123"),
		FullName: envOrDefault("MINDBRIDGE_STAFF_NAME", "Wellness Team"),
	}
	seedDeps := orchestrators.SeedStaffDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedStaff(context.Background(), seedInput, seedDeps); err != nil {
		log.Fatalf("failed to seed staff account: %v", err)
	}

	// Registration can be restricted to a campus email domain
	web.SetInstitutionalDomain(os.Getenv("MINDBRIDGE_EMAIL_DOMAIN"))

	// Configure email sender for booking decision notifications
	resendKey := os.Getenv("MINDBRIDGE_RESEND_KEY")
	emailFrom := envOrDefault("MINDBRIDGE_EMAIL_FROM", "MindBridge Wellness <noreply@mindbridge.example>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("MINDBRIDGE_ENV") == "production" {
			log.Println("WARNING: MINDBRIDGE_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set MINDBRIDGE_RESEND_KEY for real delivery)")
		}
	}

	// Sweep approved bookings whose meeting window has passed
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("*/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		deps := orchestrators.CompleteElapsedBookingsDeps{BookingStore: bkStore}
		n, err := orchestrators.ExecuteCompleteElapsedBookings(ctx, deps)
		if err != nil {
			slog.Error("booking_sweep_failed", "error", err.Error())
			return
		}
		if n > 0 {
			slog.Info("booking_sweep", "completed", n)
		}
	}); err != nil {
		log.Fatalf("failed to schedule booking sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP handler with middleware (pass collector for timing + perf endpoint)
	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("MINDBRIDGE_ADDR", ":8080")
	log.Printf("MindBridge %s starting on %s (env=%s)", version, addr, envOrDefault("MINDBRIDGE_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// setupLogging configures slog. MINDBRIDGE_LOG_LEVEL accepts debug, info,
// warn or error; the default is info.
func setupLogging() {
	level := slog.LevelInfo
	switch os.Getenv("MINDBRIDGE_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
