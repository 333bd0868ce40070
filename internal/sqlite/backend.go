// Package sqlite implements the relational storage backend for todolist.
// The default dialect is an embedded SQLite file; the same tables run on
// MySQL when the config selects it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// DatabaseFile is the SQLite file created inside Config.DataDir.
const DatabaseFile = "todolist.db"

// Backend implements types.Store on a database/sql handle. One Backend is
// created at startup and shared by every request; each unit of work runs in
// its own Session.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	dialect  *dialect
}

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the database described by config and creates any missing
// tables and indexes. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	d, dsn, err := resolveDialect(config)
	if err != nil {
		return err
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.name, err)
	}
	d.configure(db)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connect %s: %w", d.name, err)
	}

	for _, stmt := range d.schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	b.db = db
	b.dialect = d
	b.config = config
	b.attached = true
	return nil
}

// resolveDialect picks the dialect for config and builds its DSN. For SQLite
// it creates DataDir if needed.
func resolveDialect(config types.Config) (*dialect, string, error) {
	switch config.Backend {
	case types.BackendMySQL:
		return mysqlDialect, config.DSN, nil
	default:
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, "", err
		}
		return sqliteDialect, sqliteDSN(filepath.Join(dataDir, DatabaseFile)), nil
	}
}

// Detach closes the database handle. After Detach, Begin and Ping return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// Begin opens a Session backed by a new transaction.
func (b *Backend) Begin(ctx context.Context) (types.Session, error) {
	sess, err := b.begin(ctx)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (b *Backend) begin(ctx context.Context) (*session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	return newSession(tx, b.dialect), nil
}

// Ping verifies the database is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	return b.db.PingContext(ctx)
}
