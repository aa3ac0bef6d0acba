// Package bolt provides file-backed persistence of roll history using
// bbolt. The store owns truncation policy: on every save the history
// is pruned to the configured limit, keeping the most recent sessions.
package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicestats/internal/dice"
)

const bucketSessions = "sessions"

// Store persists roll sessions in a bbolt database file.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
	limit  int
}

// Open opens (creating if necessary) the history database at path.
// limit is the maximum number of sessions retained on save; limit <= 0
// disables truncation.
//
// Postcondition: Returns a ready Store or a non-nil error. The parent
// directory is created if missing.
func Open(path string, limit int, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSessions))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history bucket: %w", err)
	}

	return &Store{db: db, logger: logger, limit: limit}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession appends a session to the history and prunes the oldest
// entries beyond the retention limit.
func (s *Store) SaveSession(session dice.RollSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSessions))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(marshalSeq(seq), data); err != nil {
			return err
		}
		return s.prune(b)
	})
}

// prune deletes the oldest sessions until the bucket holds at most
// limit entries. Keys are sequence-ordered, so the cursor's first
// entries are the oldest.
func (s *Store) prune(b *bolt.Bucket) error {
	if s.limit <= 0 {
		return nil
	}
	// Stats().KeyN is stale inside a write transaction, so count with
	// a cursor walk.
	count := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}
	for ; count > s.limit; count-- {
		k, _ := c.First()
		if k == nil {
			return nil
		}
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// RecentSessions returns up to n of the most recent sessions, oldest
// first. Records that fail to decode are skipped with a warning so a
// partially corrupt history never breaks reads.
func (s *Store) RecentSessions(n int) ([]dice.RollSession, error) {
	if n <= 0 {
		return nil, nil
	}

	var sessions []dice.RollSession
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketSessions)).Cursor()
		for k, v := c.Last(); k != nil && len(sessions) < n; k, v = c.Prev() {
			var session dice.RollSession
			if err := json.Unmarshal(v, &session); err != nil {
				s.logger.Warn("skipping corrupt history record",
					zap.Uint64("seq", unmarshalSeq(k)),
					zap.Error(err),
				)
				continue
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Cursor walked newest to oldest; reverse to insertion order.
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions, nil
}

// History loads the entire retained history.
func (s *Store) History() (dice.RollHistory, error) {
	var count int
	if err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(bucketSessions)).Stats().KeyN
		return nil
	}); err != nil {
		return dice.RollHistory{}, err
	}

	sessions, err := s.RecentSessions(count)
	if err != nil {
		return dice.RollHistory{}, err
	}
	return dice.RollHistory{Sessions: sessions}, nil
}

// Len returns the number of stored sessions, counting corrupt records.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketSessions)).Stats().KeyN
		return nil
	})
	return n, err
}

// Clear deletes all stored sessions.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketSessions)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketSessions))
		return err
	})
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
