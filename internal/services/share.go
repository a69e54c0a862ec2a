package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"ghdrive/internal/models"
	"ghdrive/internal/store"
)

var (
	ErrShareNotFound = errors.New("share link not found")
	ErrShareInactive = errors.New("share link has been deactivated")
	ErrShareExpired  = errors.New("share link has expired")
	ErrInvalidPath   = errors.New("invalid share path")
)

// shareIDLength is how many characters of the generated UUID form a share id.
// 8 hex characters give 32 bits of entropy, enough to make guessing a live
// link impractical over its lifetime.
const shareIDLength = 8

// ShareService owns the share link lifecycle: creation, toggling, deletion,
// and public resolution with visit tracking.
type ShareService struct {
	store store.Store
	now   func() time.Time
}

// NewShareService creates a share service backed by the given store.
func NewShareService(st store.Store) *ShareService {
	return &ShareService{
		store: st,
		now:   time.Now,
	}
}

// Create generates a new share record for fullPath with the requested
// lifetime and persists it.
func (s *ShareService) Create(ctx context.Context, fullPath, unit string, value int) (*models.ShareRecord, error) {
	if strings.Trim(fullPath, "/") == "" {
		return nil, ErrInvalidPath
	}

	now := s.now()
	expireAt, err := models.ExpireAtFor(now, unit, value)
	if err != nil {
		return nil, err
	}

	record := &models.ShareRecord{
		ID:        uuid.NewString()[:shareIDLength],
		FullPath:  fullPath,
		CreatedAt: now.UnixMilli(),
		ExpireAt:  expireAt,
		Active:    true,
		Visits:    0,
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist share record: %w", err)
	}
	return record, nil
}

// Toggle flips a record's active flag. Toggling a missing id reports
// ErrShareNotFound and creates nothing.
func (s *ShareService) Toggle(ctx context.Context, id string, active bool) error {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrShareNotFound
		}
		return err
	}

	record.Active = active
	return s.store.Put(ctx, id, record)
}

// Delete removes a record. Deleting an id that does not exist is a no-op.
func (s *ShareService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// List returns all share records, newest first.
func (s *ShareService) List(ctx context.Context) ([]*models.ShareRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
	return records, nil
}

// Resolve validates a public share access and returns the record to serve.
// Deactivated and expired records produce distinct errors so callers can
// answer with the right status. On success the visit counter is incremented
// as a best-effort background write that never delays the response.
func (s *ShareService) Resolve(ctx context.Context, id string) (*models.ShareRecord, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}

	if !record.Active {
		return nil, ErrShareInactive
	}
	if record.IsExpired(s.now()) {
		return nil, ErrShareExpired
	}

	// Fire-and-forget: the request context may be gone by the time the
	// write lands, so the increment runs against the background context.
	updated := *record
	updated.Visits++
	go func() {
		if err := s.store.Put(context.Background(), id, &updated); err != nil {
			log.Printf("Warning: failed to record visit for share %s: %v", id, err)
		}
	}()

	return record, nil
}
