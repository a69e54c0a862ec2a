package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"ghdrive/internal/models"
)

// keyPrefix namespaces share records inside the database so other key types
// can coexist later.
const keyPrefix = "share_"

// BadgerStore implements Store on top of an embedded BadgerDB database.
// Records are stored as JSON values under "share_<id>" keys.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) the database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open share database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func recordKey(id string) []byte {
	return []byte(keyPrefix + id)
}

// Create persists a new record under its id.
func (s *BadgerStore) Create(ctx context.Context, record *models.ShareRecord) error {
	return s.Put(ctx, record.ID, record)
}

// Get loads a record by id.
func (s *BadgerStore) Get(ctx context.Context, id string) (*models.ShareRecord, error) {
	var record models.ShareRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load share record: %w", err)
	}
	return &record, nil
}

// Put overwrites the record stored under id.
func (s *BadgerStore) Put(ctx context.Context, id string, record *models.ShareRecord) error {
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode share record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(id), val)
	})
	if err != nil {
		return fmt.Errorf("failed to store share record: %w", err)
	}
	return nil
}

// Delete removes a record. Absent ids are a no-op.
func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete share record: %w", err)
	}
	return nil
}

// List returns every record stored under the share prefix.
func (s *BadgerStore) List(ctx context.Context) ([]*models.ShareRecord, error) {
	var records []*models.ShareRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(keyPrefix)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record models.ShareRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list share records: %w", err)
	}
	return records, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
