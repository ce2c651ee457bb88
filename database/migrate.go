package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its settings in package state.
var gooseMu sync.Mutex

// Migrate applies the embedded schema migrations to db. Every migration is
// idempotent, so it is safe to run against tables created before the goose
// version table existed.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if logger != nil {
		goose.SetLogger(gooseLogger{logger: logger})
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info("Migrations: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf is reported at error level; goose returns the error to Migrate as well.
func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error("Migrations: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
