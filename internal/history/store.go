// Package history persists executed searches in a small bbolt database.
package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var searchesBucket = []byte("searches")

type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(searchesBucket)
		return createErr
	})

	if err != nil {
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save appends one entry. The entry's ID and ExecutedAt are assigned here;
// keys are the big-endian sequence number so a reverse cursor walk yields
// newest-first.
func (s *Store) Save(entry *Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(searchesBucket)

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		entry.ID = seq
		if entry.ExecutedAt.IsZero() {
			entry.ExecutedAt = time.Now()
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), data)
	})
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	var entries []*Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(searchesBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("decoding history entry %x: %w", k, err)
			}
			entries = append(entries, &entry)
			if limit > 0 && len(entries) >= limit {
				return nil
			}
		}
		return nil
	})
	return entries, err
}

// Clear drops all recorded searches.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(searchesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(searchesBucket)
		return err
	})
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
