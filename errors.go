package tinystore

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tinystore/persistence"
)

var (
	// ErrDuplicateFound is returned by Create (and Update) when the store
	// was built with strict duplicates and an equal element already exists.
	ErrDuplicateFound = errors.New("duplicate item found")

	// ErrItemNotFound is returned when a destroy/find/query target is
	// absent, or when a query matches nothing.
	ErrItemNotFound = errors.New("item not found")

	// ErrDatabaseNotFound is returned by Load when the snapshot path does
	// not exist.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrBadName is returned by Open when no usable label can be derived
	// from the snapshot path.
	ErrBadName = errors.New("bad database name")

	// ErrCorrupt is returned when a snapshot cannot be decoded: wrong
	// magic, truncation, checksum mismatch, unknown codec, or payload that
	// does not match the expected element type.
	ErrCorrupt = errors.New("corrupt database file")
)

// translateError normalizes errors from the persistence and codec layers
// into the store's taxonomy. Plain IO errors pass through untouched so
// callers can still inspect them with errors.Is/os.IsPermission etc.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if persistence.IsFormatError(err) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return err
}
