package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/lostfound-server/database"
	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
)

var errConnectionClosed = errors.New("connection manager is closed")

type migrateFunc func(ctx context.Context, db *sql.DB) error

// Connection owns a single database connection. Callers reach it only through
// WithConn, which probes the held connection, replaces it when the probe
// fails and runs the callback while holding the lock.
type Connection struct {
	mu           sync.Mutex
	db           *sql.DB
	conn         *sql.Conn
	migrate      migrateFunc
	migrated     bool
	closed       bool
	probeTimeout time.Duration
	logger       *logger.Logger
}

// NewConnection parses dsn and prepares a connection manager. No network
// I/O happens until the first call to WithConn.
func NewConnection(dsn string, probeTimeout time.Duration, logger *logger.Logger) (*Connection, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDB(*cfg)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	migrate := func(ctx context.Context, db *sql.DB) error {
		return database.Migrate(ctx, db, logger.Logger)
	}

	return newConnection(db, migrate, probeTimeout, logger), nil
}

func newConnection(db *sql.DB, migrate migrateFunc, probeTimeout time.Duration, logger *logger.Logger) *Connection {
	return &Connection{
		db:           db,
		migrate:      migrate,
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

// WithConn runs fn with a live connection. fn must not retain the connection
// after it returns.
func (c *Connection) WithConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}

	return fn(conn)
}

// Ping verifies that a live connection can be obtained.
func (c *Connection) Ping(ctx context.Context) error {
	return c.WithConn(ctx, func(*sql.Conn) error { return nil })
}

// Close releases the held connection and the underlying pool.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var connErr error
	if c.conn != nil {
		connErr = c.conn.Close()
		c.conn = nil
	}

	return errors.Join(connErr, c.db.Close())
}

func (c *Connection) acquire(ctx context.Context) (*sql.Conn, error) {
	if c.closed {
		return nil, &model.StorageError{Op: "connect", Err: errConnectionClosed}
	}

	if c.conn != nil {
		err := c.probe(ctx)
		if err == nil {
			return c.conn, nil
		}
		c.logger.Warn("Database: connection probe failed, reconnecting", "error", err)
		_ = c.conn.Close()
		c.conn = nil
	}

	if !c.migrated {
		if err := c.migrate(ctx, c.db); err != nil {
			c.logger.Error("Database: failed to apply migrations", "error", err)
			return nil, &model.StorageError{Op: "migrate", Err: err}
		}
		c.migrated = true
	}

	conn, err := c.db.Conn(ctx)
	if err != nil {
		c.logger.Error("Database: failed to open connection", "error", err)
		return nil, &model.StorageError{Op: "connect", Err: err}
	}
	c.conn = conn

	return conn, nil
}

func (c *Connection) probe(ctx context.Context) error {
	if c.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
	}

	return c.conn.PingContext(ctx)
}
