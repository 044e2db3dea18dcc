package storage

import (
	"chat-router/state"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

const (
	latestKey     = "snapshot:latest"
	historyPrefix = "snapshot:history:"
)

// HistoryEntry describes one archived snapshot without decoding the chats.
type HistoryEntry struct {
	Key       string
	TakenAt   time.Time
	Chats     int
	Operators int
	Accepts   bool
}

// SnapshotRepository stores CBOR encoded snapshots in BadgerDB.
// The latest snapshot is overwritten on every save; archived copies expire after historyTTL.
type SnapshotRepository struct {
	db         *badger.DB
	log        *slog.Logger
	historyTTL time.Duration
	enc        cbor.EncMode
}

func NewSnapshotRepository(db *badger.DB, log *slog.Logger, historyTTL time.Duration) (*SnapshotRepository, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return &SnapshotRepository{db: db, log: log, historyTTL: historyTTL, enc: enc}, nil
}

func (r *SnapshotRepository) Save(snapshot state.Snapshot) error {
	data, err := r.enc.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(latestKey), data); err != nil {
			return err
		}
		if r.historyTTL <= 0 {
			return nil
		}
		key := fmt.Sprintf("%s%020d", historyPrefix, snapshot.TakenAt.UnixNano())
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(r.historyTTL))
	})
}

// Load returns the latest snapshot; ok is false on a fresh database.
func (r *SnapshotRepository) Load() (state.Snapshot, bool, error) {
	var snapshot state.Snapshot
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(latestKey))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return cbor.Unmarshal(v, &snapshot)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return state.Snapshot{}, false, nil
	}
	if err != nil {
		return state.Snapshot{}, false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snapshot, true, nil
}

// History lists archived snapshots, newest first, at most limit entries.
func (r *SnapshotRepository) History(limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(historyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration has to seek past the last key of the prefix
		seek := append([]byte(historyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix([]byte(historyPrefix)) && len(entries) < limit; it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var snapshot state.Snapshot
				if err := cbor.Unmarshal(v, &snapshot); err != nil {
					r.log.Warn("Skipping unreadable snapshot", "key", string(item.Key()), "error", err)
					return nil
				}
				entries = append(entries, HistoryEntry{
					Key:       string(item.KeyCopy(nil)),
					TakenAt:   snapshot.TakenAt,
					Chats:     len(snapshot.Chats),
					Operators: len(snapshot.Operators),
					Accepts:   snapshot.System.AcceptsCustomers,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during history scan: %w", err)
	}
	return entries, nil
}
