// Package types defines the capability interfaces, the Workspace and Table
// storage interfaces, entity records, and the standard error types for the
// catalog system.
//
// Catalog members are plain Go values. Whether a member supports a feature
// (local data, style selection, item search, layered traits) is decided by
// the interfaces in this package that its dynamic type happens to satisfy,
// never by a declared class hierarchy. See package capability for the probes.
package types
