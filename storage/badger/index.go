package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/storage"
)

// IndexRepository implements storage.IndexRepository for BadgerDB.
// Both index tiers are keyed by document ID, so re-ingesting a document
// replaces its entries in place.
type IndexRepository struct {
	backend *Backend
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates an IndexRepository on an open backend.
func NewIndexRepository(backend *Backend) (*IndexRepository, error) {
	return &IndexRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *IndexRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *IndexRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutSummary stores a document-level summary entry.
func (r *IndexRepository) PutSummary(ctx context.Context, entry *core.SummaryEntry) error {
	if entry.DocID == "" {
		return core.ErrEmptyDocID
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSummaryKey(entry.DocID)
		if err := tx.Set(key, storage.MarshalSummaryEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// PutChunkEntry stores a chunk-level entry.
func (r *IndexRepository) PutChunkEntry(ctx context.Context, entry *core.ChunkEntry) error {
	if entry.DocID == "" {
		return core.ErrEmptyDocID
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkEntryKey(entry.DocID)
		if err := tx.Set(key, storage.MarshalChunkEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSummaries retrieves all stored summary entries.
func (r *IndexRepository) LoadSummaries(ctx context.Context) ([]*core.SummaryEntry, error) {
	var results []*core.SummaryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(summaryPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.SummaryEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalSummaryEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, entry)
		}
		return nil
	}, false)
	return results, err
}

// LoadChunkEntries retrieves all stored chunk entries.
func (r *IndexRepository) LoadChunkEntries(ctx context.Context) ([]*core.ChunkEntry, error) {
	var results []*core.ChunkEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkEntryPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.ChunkEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalChunkEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, entry)
		}
		return nil
	}, false)
	return results, err
}

// DeleteDocument removes both tiers for one document.
func (r *IndexRepository) DeleteDocument(ctx context.Context, docID string) error {
	if docID == "" {
		return core.ErrEmptyDocID
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteIgnoreMissing(tx, makeSummaryKey(docID)); err != nil {
			return err
		}
		if err := deleteIgnoreMissing(tx, makeChunkEntryKey(docID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func deleteIgnoreMissing(tx *badger.Txn, key []byte) error {
	err := tx.Delete(key)
	if err == badger.ErrKeyNotFound {
		return nil
	}
	return err
}
