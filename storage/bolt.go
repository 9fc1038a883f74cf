// ABOUTME: Bolt-backed store for single-node persistent sessions
// ABOUTME: Keeps all values in one bucket of an embedded database file

package storage

import (
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var sessionsBucket = []byte("sessions")

// Bolt stores values in an embedded bolt database
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the database at path
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(key string) (string, bool, error) {
	var value string
	var found bool

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		if bucket == nil {
			return nil
		}
		// bolt values are only valid inside the transaction
		if v := bucket.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (b *Bolt) Set(key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sessionsBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Remove(key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}

// Close releases the database file lock
func (b *Bolt) Close() error {
	return b.db.Close()
}
