package types

import (
	"context"
	"errors"
)

// Store defines the interface for backend-agnostic storage access.
// Callers attach to a backend, open one Session per unit of work, and detach
// when done.
type Store interface {
	// Attach connects the Store to the backend described by config and
	// creates tables that do not exist yet. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Begin and Ping return ErrStoreDetached.
	Detach() error

	// Begin opens a Session. The caller must Close it on every path.
	Begin(ctx context.Context) (Session, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Session is a single unit of work against the store. Writes become visible
// to other sessions only after Commit. Close releases the session and rolls
// back anything not committed; it is safe to call after Commit.
type Session interface {
	Teams() TeamTable
	Items() ItemTable
	Commit() error
	Close() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrSessionClosed   = errors.New("session is closed")
)
