package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/lingxi-ai/retrieva/ai/mock"
	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/storage/badger"
)

func newTestStore(t *testing.T) (*Store, *aimock.Embedder) {
	t.Helper()
	chunkRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chunkRepo.Close()
		backend.Close()
	})

	embedder := aimock.NewEmbedder()
	store, err := NewStore(embedder, chunkRepo)
	require.NoError(t, err)
	return store, embedder
}

func TestNewStoreValidation(t *testing.T) {
	chunkRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewStore(nil, chunkRepo)
	assert.Equal(t, ErrEmbedderRequired, err)

	_, err = NewStore(aimock.NewEmbedder(), nil)
	assert.Equal(t, ErrRepositoryRequired, err)
}

func TestAddAndSearch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.AddChunks(ctx,
		core.Chunk{Text: "王明是车站站长", KBID: 7, Source: "人事.md"},
		core.Chunk{Text: "铁路运输安全管理条例", KBID: 7, Source: "条例.md"},
		core.Chunk{Text: "另一个知识库的内容", KBID: 8},
	)
	require.NoError(t, err)

	// The mock embedder is deterministic, so the exact text is closest.
	matches, err := store.SimilaritySearch(ctx, "王明是车站站长", 10, 7)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "王明是车站站长", matches[0].Chunk.Text)
	assert.InDelta(t, 0.0, float64(matches[0].Distance), 1e-5)
	assert.Less(t, matches[0].Distance, matches[1].Distance)
}

func TestSearchScopedToKB(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx,
		core.Chunk{Text: "只在知识库七", KBID: 7},
	))

	matches, err := store.SimilaritySearch(ctx, "只在知识库七", 10, 8)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchInvalidTopK(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.SimilaritySearch(context.Background(), "查询", 0, 7)
	assert.ErrorIs(t, err, core.ErrInvalidTopK)
}

func TestAddChunksEmpty(t *testing.T) {
	store, embedder := newTestStore(t)

	require.NoError(t, store.AddChunks(context.Background()))
	assert.Zero(t, embedder.CallCount())
}
