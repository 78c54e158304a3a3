package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fias/marcaciones/internal/config"
	"github.com/fias/marcaciones/internal/domain/activity"
	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/domain/project"
	"github.com/fias/marcaciones/internal/reconcile"
	"github.com/fias/marcaciones/internal/sqlite"
	"github.com/fias/marcaciones/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	employeeRepo := sqlite.NewEmployeeRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	employeeSvc := employee.NewService(employeeRepo, logger)
	projectSvc := project.NewService(projectRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)

	if cfg.DB.Seed != "" {
		if err := loadSeed(cfg.DB.Seed, employeeSvc, projectSvc, logger); err != nil {
			logger.Error("failed to load seed data", "path", cfg.DB.Seed, "error", err)
			os.Exit(1)
		}
	}

	engine := reconcile.NewEngine(
		cfg.Files.Teams.Columns,
		cfg.Files.Biometric.Columns,
		logger,
	)

	router := transport.NewRouter(employeeSvc, projectSvc, activitySvc, engine, cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// seedFile matches the shape of the FIAS data files: either bare arrays
// or wrapped in "funcionarios"/"proyectos" keys.
type seedFile struct {
	Employees []employee.Employee `json:"funcionarios"`
	Projects  []project.Project   `json:"proyectos"`
}

// loadSeed imports roster reference data on first start. Entries that
// already exist are left untouched.
func loadSeed(path string, employees *employee.Service, projects *project.Service, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	ctx := context.Background()
	imported := 0
	for _, p := range seed.Projects {
		_, err := projects.Create(ctx, project.CreateRequest{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Color:       p.Color,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
		})
		if err == nil {
			imported++
			if !p.Active {
				if err := projects.SetActive(ctx, p.ID, false); err != nil {
					return fmt.Errorf("seed project %s: %w", p.ID, err)
				}
			}
		} else if err != project.ErrDuplicateID {
			return fmt.Errorf("seed project %s: %w", p.ID, err)
		}
	}
	for _, e := range seed.Employees {
		_, err := employees.Create(ctx, employee.CreateRequest{
			ID:         e.ID,
			Code:       e.Code,
			FullName:   e.FullName,
			GivenName:  e.GivenName,
			FamilyName: e.FamilyName,
			Title:      e.Title,
			ProjectID:  e.ProjectID,
			Email:      e.Email,
			Phone:      e.Phone,
		})
		if err == nil {
			imported++
			if !e.Active {
				if err := employees.SetActive(ctx, e.ID, false); err != nil {
					return fmt.Errorf("seed employee %d: %w", e.ID, err)
				}
			}
		} else if err != employee.ErrDuplicateID && err != employee.ErrDuplicateCode {
			return fmt.Errorf("seed employee %d: %w", e.ID, err)
		}
	}

	if imported > 0 {
		logger.Info("seed data imported", "entries", imported)
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
