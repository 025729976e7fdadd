package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a ChunkRepository on an open backend.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *ChunkRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, kbID int64, limit int) ([]*storage.ChunkMatch, error) {
	return r.backend.FindSimilar(ctx, vector, kbID, limit)
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChunks adds one or more embedded chunks to storage.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.EmbeddedChunk) ([]*core.EmbeddedChunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if err := core.ValidateChunk(&chunk.Chunk); err != nil {
				return err
			}
			if chunk.Chunk.ID == 0 {
				chunk.Chunk.ID = core.IDFromContent(chunk.Chunk.Text)
			}

			// Store primary record
			key := makeChunkKey(chunk.Chunk.ID)
			value := storage.MarshalChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update knowledge-base index
			kbKey := makeChunkKBKey(chunk.Chunk.KBID, chunk.Chunk.ID)
			if err := tx.Set(kbKey, storage.MarshalID(chunk.Chunk.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.EmbeddedChunk, error) {
	var result *core.EmbeddedChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkKey(id)
		var err error
		result, err = readChunk(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunksByKB retrieves every chunk belonging to a knowledge base.
func (r *ChunkRepository) GetChunksByKB(ctx context.Context, kbID int64) ([]*core.EmbeddedChunk, error) {
	var results []*core.EmbeddedChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChunkKBKey(kbID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the chunk ID from the index
			var chunkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			chunk, err := readChunk(tx, makeChunkKey(chunkID))
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteChunks removes chunks by their IDs.
func (r *ChunkRepository) DeleteChunks(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkKey(id)

			// Read record to get the KB for index cleanup
			chunk, err := readChunk(tx, key)
			if err != nil {
				return err
			}
			if chunk == nil {
				return storage.ErrNotFound
			}

			kbKey := makeChunkKBKey(chunk.Chunk.KBID, id)
			if err := tx.Delete(kbKey); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readChunk reads an embedded chunk from the transaction.
// Returns nil without error when the key is absent.
func readChunk(tx *badger.Txn, key []byte) (*core.EmbeddedChunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.EmbeddedChunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalChunk(val)
		return unmarshalErr
	})
	return chunk, err
}
