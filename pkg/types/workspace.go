package types

import "errors"

// Workspace defines the interface for backend-agnostic storage of catalog
// members and their persisted strata. Callers attach to a backend, access
// tables by name, and detach when done.
type Workspace interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Workspace to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrWorkspaceDetached.
	Detach() error
}

// Workspace lifecycle errors.
var (
	ErrWorkspaceDetached = errors.New("workspace is detached")
	ErrAlreadyAttached   = errors.New("workspace is already attached")
	ErrTableNotFound     = errors.New("table not found")
)
