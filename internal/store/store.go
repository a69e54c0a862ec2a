package store

import (
	"context"
	"errors"

	"ghdrive/internal/models"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("share record not found")

// Store defines the key-value interface for share record persistence.
//
// Put is a full overwrite; callers that need to change a single field must
// read-modify-write, and concurrent writers to the same id race with
// last-write-wins semantics. Nothing here is transactional.
type Store interface {
	// Create persists a new record under its id.
	Create(ctx context.Context, record *models.ShareRecord) error

	// Get loads a record by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*models.ShareRecord, error)

	// Put overwrites the record stored under id.
	Put(ctx context.Context, id string, record *models.ShareRecord) error

	// Delete removes a record. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	// List returns every stored record, in no particular order.
	List(ctx context.Context) ([]*models.ShareRecord, error)

	// Close releases the underlying database.
	Close() error
}
