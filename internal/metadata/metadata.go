package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("metadata: not found")

const (
	docPrefix = "doc:"
	runPrefix = "run:"

	// fixed width so keys sort in time order
	runTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// ModelSummary is one model's outcome within a run.
type ModelSummary struct {
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Variant string  `json:"variant"`
	Average float64 `json:"average"`
	Missing int     `json:"missing"`
}

// RunRecord describes one completed grading run.
type RunRecord struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	Questions  int            `json:"questions"`
	KeyPath    string         `json:"key_path"`
	Models     []ModelSummary `json:"models"`
	OutputPath string         `json:"output_path"`
	ArchiveID  string         `json:"archive_id,omitempty"`
}

// NewRunRecord starts a record with a fresh id.
func NewRunRecord(questions int, keyPath string) RunRecord {
	return RunRecord{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Questions: questions,
		KeyPath:   keyPath,
	}
}

// MetadataStore wraps BadgerDB for the extraction cache and run history.
type MetadataStore struct {
	db *badger.DB
}

// OpenMetadataStore opens (or creates) a BadgerDB at the given path.
func OpenMetadataStore(dbPath string) (*MetadataStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %v", err)
	}
	return &MetadataStore{db: db}, nil
}

// Close closes the BadgerDB.
func (ms *MetadataStore) Close() error {
	return ms.db.Close()
}

// PutDocumentPages stores the encoded pages of the document with the given
// content hash.
func (ms *MetadataStore) PutDocumentPages(hash string, pages []byte) error {
	key := []byte(docPrefix + hash)
	return ms.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, pages)
	})
}

// GetDocumentPages returns what PutDocumentPages stored for hash.
func (ms *MetadataStore) GetDocumentPages(hash string) ([]byte, error) {
	key := []byte(docPrefix + hash)
	var pages []byte
	err := ms.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		pages, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return pages, err
}

// PutRun stores a run record. Keys sort by start time.
func (ms *MetadataStore) PutRun(run RunRecord) error {
	key := []byte(runPrefix + run.StartedAt.UTC().Format(runTimeLayout) + ":" + run.ID)
	val, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return ms.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (ms *MetadataStore) ListRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := ms.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(runPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// reverse iteration seeks from the last possible key under the prefix
		for it.Seek([]byte(runPrefix + "\xff")); it.ValidForPrefix(opts.Prefix); it.Next() {
			var run RunRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			}); err != nil {
				return err
			}
			runs = append(runs, run)
			if limit > 0 && len(runs) >= limit {
				break
			}
		}
		return nil
	})
	return runs, err
}

// GetRun finds a run by id. Keys lead with the start time, so this scans
// the run prefix keys only.
func (ms *MetadataStore) GetRun(id string) (RunRecord, error) {
	var run RunRecord
	err := ms.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(runPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
			if !strings.HasSuffix(string(it.Item().Key()), ":"+id) {
				continue
			}
			return it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			})
		}
		return fmt.Errorf("%w: run %s", ErrNotFound, id)
	})
	return run, err
}
