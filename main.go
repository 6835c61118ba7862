package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"racidash/adapters/memory"
	"racidash/adapters/postgres"
	"racidash/app"
	"racidash/internal/config"
	"racidash/ports"
	"racidash/ui"
)

// initSnapshotRepo connects to PostgreSQL when configured and falls back to
// the in-memory store otherwise.
func initSnapshotRepo(cfg *config.Config) ports.SnapshotRepository {
	if cfg.Database.URL == "" {
		log.Println("No DATABASE_URL configured, snapshot history kept in memory")
		return memory.NewSnapshotRepository()
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Printf("Failed to connect to database, falling back to memory store: %v", err)
		return memory.NewSnapshotRepository()
	}

	repo, err := postgres.NewSnapshotRepository(db)
	if err != nil {
		log.Printf("Failed to prepare snapshot schema, falling back to memory store: %v", err)
		db.Close()
		return memory.NewSnapshotRepository()
	}
	log.Println("Snapshot history persisted to PostgreSQL")
	return repo
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	service := app.NewDatasetService(initSnapshotRepo(cfg))

	if cfg.Data.File != "" {
		log.Printf("Loading initial RACI file: %s", cfg.Data.File)
		if _, err := service.LoadFile(context.Background(), cfg.Data.File, cfg.Data.Sheet); err != nil {
			log.Fatalf("Failed to load %s: %v", cfg.Data.File, err)
		}
	} else {
		log.Println("No RACI_FILE configured, waiting for upload")
	}

	server := ui.NewServer(service, cfg)
	log.Fatal(server.Start(cfg.Server.Host + ":" + cfg.Server.Port))
}
