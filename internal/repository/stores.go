package repository

import (
	"context"

	"github.com/dtroode/lostfound-server/internal/config"
	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
	"github.com/dtroode/lostfound-server/internal/repository/memory"
	"github.com/dtroode/lostfound-server/internal/repository/postgres"
)

// Backend names the storage implementation selected at startup.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

// Stores groups the stores of the selected backend.
type Stores struct {
	Backend Backend
	Items   model.ItemStore
	Users   model.UserStore

	conn *postgres.Connection
}

// Open selects the backend once. An empty database URL selects process
// memory unless the configuration requires a database.
func Open(cfg config.Database, logger *logger.Logger) (*Stores, error) {
	if cfg.URL == "" {
		if cfg.Required {
			return nil, &model.ConfigurationError{Reason: "DATABASE_URL is required but not set"}
		}

		logger.Warn("Storage: DATABASE_URL is not set, items and users are kept in memory")

		return &Stores{
			Backend: BackendMemory,
			Items:   memory.NewItemRepository(),
			Users:   memory.NewUserRepository(),
		}, nil
	}

	conn, err := postgres.NewConnection(cfg.URL, cfg.ProbeTimeout, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Storage: using postgres", "url", postgres.RedactDSN(cfg.URL))

	return &Stores{
		Backend: BackendPostgres,
		Items:   postgres.NewItemRepository(conn),
		Users:   postgres.NewUserRepository(conn),
		conn:    conn,
	}, nil
}

// Ping reports whether the backend can serve requests.
func (s *Stores) Ping(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Ping(ctx)
}

// Close releases database resources, if any.
func (s *Stores) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
