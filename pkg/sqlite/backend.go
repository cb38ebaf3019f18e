// Package sqlite provides the public API for the SQLite workspace backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/catalog/internal/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	ws := sqlite.NewBackend()
//	err := ws.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".catalog-db",
//	})
//	defer ws.Detach()
func NewBackend() types.Workspace {
	return sqlite.NewBackend()
}
