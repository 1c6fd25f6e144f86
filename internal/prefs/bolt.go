package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketPrefs     = "prefs"
	boltOpenTimeout = time.Second
)

// Bolt stores values in a bbolt bucket.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the database at path. Another process
// holding the file lock makes it fail after a short timeout.
func OpenBolt(path string) (*Bolt, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := bolt.Open(resolved, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPrefs))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize prefs bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketPrefs)).Get([]byte(key)); v != nil {
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

func (b *Bolt) Put(key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPrefs)).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
