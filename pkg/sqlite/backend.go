// Package sqlite provides the public API for the relational todolist store.
// This package exposes the factory function for creating backends while
// keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/todolist/internal/sqlite"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".todolist-db",
//	})
//	defer store.Detach()
func NewBackend() types.Store {
	return sqlite.NewBackend()
}
