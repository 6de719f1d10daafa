package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiru/beadtrack/internal/config"
	"github.com/kiru/beadtrack/internal/database"
	"github.com/kiru/beadtrack/internal/database/repository"
	"github.com/kiru/beadtrack/internal/service"
	"github.com/kiru/beadtrack/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, migrationsPath()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := repository.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	projectRepo := repository.NewProjectRepo(db)
	positionRepo := repository.NewPositionRepo(db)
	markRepo := repository.NewMarkRepo(db)

	// services
	projects := &service.ProjectService{
		Projects:  projectRepo,
		Positions: positionRepo,
		Marks:     markRepo,
	}
	maintenance := &service.MaintenanceService{DB: db}

	app := tui.New(ctx, cfg,
		tui.Repos{Projects: projectRepo, Positions: positionRepo, Marks: markRepo},
		tui.Services{Projects: projects, Maintenance: maintenance},
	)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	app.Close()
}

// migrationsPath resolves the migrations directory: an explicit override,
// else next to the source tree for development runs.
func migrationsPath() string {
	if p := os.Getenv("BEADTRACK_MIGRATIONS"); p != "" {
		return p
	}
	return "internal/database/migrations"
}
