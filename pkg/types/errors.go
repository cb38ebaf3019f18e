package types

import (
	"errors"
	"fmt"
	"strings"
)

// Registry errors.
var (
	ErrKeyNotFound = errors.New("type key not registered")
	ErrKeyConflict = errors.New("type key already registered")
	ErrInvalidKey  = errors.New("key must not be empty")
	ErrNilFactory  = errors.New("factory must not be nil")
)

// Strata and style errors.
var (
	ErrUnknownStratum  = errors.New("unknown stratum")
	ErrStratumConflict = errors.New("stratum already ordered in another range")
	ErrInvalidStyle    = errors.New("invalid style selection")
	ErrDuplicateStyle  = errors.New("duplicate style id")
)

// Catalog errors.
var (
	ErrMemberNotFound         = errors.New("catalog member not found")
	ErrDuplicateMember        = errors.New("duplicate catalog member id")
	ErrInvalidDefinition      = errors.New("invalid catalog definition")
	ErrUnsupportedVersion     = errors.New("unsupported catalog version")
	ErrCapabilityAbsent       = errors.New("capability not supported by member")
	ErrProviderNotInitialized = errors.New("search provider not initialized")
	ErrSearchNotConfigured    = errors.New("search not configured for member")
)

// KeyNotFoundError reports a lookup of an unregistered type key. Known lists
// the registered keys to help diagnose configuration mistakes.
type KeyNotFoundError struct {
	Kind  string
	Key   string
	Known []string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not registered (known: %s)", e.Kind, e.Key, strings.Join(e.Known, ", "))
}

// Is reports ErrKeyNotFound as a match.
func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// KeyConflictError reports a second registration under an existing key.
type KeyConflictError struct {
	Kind string
	Key  string
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("%s %q already registered", e.Kind, e.Key)
}

// Is reports ErrKeyConflict as a match.
func (e *KeyConflictError) Is(target error) bool {
	return target == ErrKeyConflict
}

// InvalidStyleError reports a style id that is not one of the group's
// available styles.
type InvalidStyleError struct {
	Group     string
	StyleID   string
	Available []string
}

func (e *InvalidStyleError) Error() string {
	return fmt.Sprintf("style %q is not available in group %q (available: %s)",
		e.StyleID, e.Group, strings.Join(e.Available, ", "))
}

// Is reports ErrInvalidStyle as a match.
func (e *InvalidStyleError) Is(target error) bool {
	return target == ErrInvalidStyle
}

// UnknownStratumError reports a stratum id that has no place in the
// precedence order.
type UnknownStratumError struct {
	StratumID string
}

func (e *UnknownStratumError) Error() string {
	return fmt.Sprintf("unknown stratum %q", e.StratumID)
}

// Is reports ErrUnknownStratum as a match.
func (e *UnknownStratumError) Is(target error) bool {
	return target == ErrUnknownStratum
}
