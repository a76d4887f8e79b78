package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"symptom-triage-agent/internal/catalog"
	"symptom-triage-agent/internal/config"
	"symptom-triage-agent/internal/oracle"
	"symptom-triage-agent/internal/platform/telegram"
	"symptom-triage-agent/internal/report"
	"symptom-triage-agent/internal/triage"
)

func main() {
	// 1. Configuration
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg := config.Load()

	// 2. Infrastructure
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		fmt.Printf("Waiting for DB... (%d/10)\n", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Could not connect to DB: %v", err)
	}
	log.Println("Connected to Database.")

	m, err := migrate.New(cfg.MigrationsURL, cfg.DatabaseURL)
	if err != nil {
		log.Printf("Migration init failed: %v", err)
	} else {
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Printf("Migration up failed: %v", err)
		} else {
			log.Println("Migrations applied successfully!")
		}
	}

	// 3. Reference catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Could not load symptom catalog: %v", err)
	}
	log.Printf("Loaded catalog with %d symptom classes.", len(cat.Classes()))

	// 4. Clients
	oracleClient, err := oracle.New(cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		log.Fatalf("Could not construct classification client: %v", err)
	}

	var reporter triage.Reporter
	if cfg.ClinicianChatID != 0 && cfg.TelegramBotToken != "" {
		tgClient := telegram.NewClient(cfg.TelegramBotToken)
		reporter = report.NewService(tgClient, cfg.ClinicianChatID)
	} else {
		log.Println("Warning: CLINICIAN_CHAT_ID or TELEGRAM_BOT_TOKEN not set. Clinician reports disabled.")
	}

	// 5. Services
	repo := triage.NewRepository(db)
	triageSvc := triage.NewService(repo, cat, oracleClient, reporter)
	triageHandler := triage.NewHandler(triageSvc)

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		triage.RegisterRoutes(r, triageHandler)
	})

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
