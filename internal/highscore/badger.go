package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"cubesurvival/internal/logging"
)

const (
	highScoreKey = "highscore"
	runPrefix    = "run:"
)

// BadgerStore keeps the high score and the run history in a badger database.
type BadgerStore struct {
	db      *badger.DB
	mu      sync.RWMutex
	isReady bool
}

func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return openBadger(opts)
}

// OpenBadgerMemory opens a store that lives only for the process.
func OpenBadgerMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, isReady: true}, nil
}

func (b *BadgerStore) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.isReady {
		return nil
	}
	b.isReady = false
	return b.db.Close()
}

func (b *BadgerStore) LoadHighScore() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.isReady {
		return 0
	}

	var score int
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(highScoreKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v, err := strconv.Atoi(string(val))
			if err != nil {
				return err
			}
			score = v
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.LogWarn("load high score: %v", err)
		}
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

func (b *BadgerStore) SaveHighScore(score int) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.isReady {
		return fmt.Errorf("store closed")
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(highScoreKey), []byte(strconv.Itoa(score)))
	})
}

// runKey orders runs by end time so a reverse scan yields the newest first.
func runKey(rec RunRecord) []byte {
	return fmt.Appendf(nil, "%s%020d:%s", runPrefix, rec.EndedAt.UnixNano(), rec.ID)
}

// RecordRun stores rec, assigning an ID when it has none.
func (b *BadgerStore) RecordRun(rec RunRecord) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.isReady {
		return fmt.Errorf("store closed")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(rec), data)
	})
}

// RecentRuns returns up to n runs, newest first.
func (b *BadgerStore) RecentRuns(n int) ([]RunRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.isReady {
		return nil, fmt.Errorf("store closed")
	}

	var runs []RunRecord
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(runPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode Seek lands on the last key <= the seek key.
		seek := append([]byte(runPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix([]byte(runPrefix)) && len(runs) < n; it.Next() {
			var rec RunRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode run %s: %w", it.Item().Key(), err)
			}
			runs = append(runs, rec)
		}
		return nil
	})
	return runs, err
}
