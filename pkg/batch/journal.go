package batch

import (
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var journalBucket = []byte("reservations")

// Entry is the journal record of a confirmed reservation.
type Entry struct {
	Owner string    `json:"owner"`
	TxID  string    `json:"txid"`
	Round uint64    `json:"round"`
	At    time.Time `json:"at"`
}

// Journal persists confirmed reservations in a bbolt file.
type Journal struct {
	db *bbolt.DB
}

// OpenJournal opens or creates the journal at path.
func OpenJournal(path string) (*Journal, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(journalBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the journal file.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Lookup returns the entry recorded for name.
func (j *Journal) Lookup(name string) (Entry, bool, error) {
	var entry Entry
	found := false
	err := j.db.View(func(tx *bbolt.Tx) error {
		buf := tx.Bucket(journalBucket).Get([]byte(name))
		if buf == nil {
			return nil
		}
		found = true
		return json.Unmarshal(buf, &entry)
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read journal entry %s: %w", name, err)
	}
	return entry, found, nil
}

// Record stores entry for name.
func (j *Journal) Record(name string, entry Entry) error {
	buf, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(journalBucket).Put([]byte(name), buf)
	})
}

// Len returns the number of recorded reservations.
func (j *Journal) Len() (int, error) {
	count := 0
	err := j.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(journalBucket).Stats().KeyN
		return nil
	})
	return count, err
}
