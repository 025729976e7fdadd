package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/storage"
)

func newMemoryRepos(t *testing.T) (storage.ChunkRepository, storage.IndexRepository) {
	t.Helper()
	chunkRepo, indexRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		indexRepo.Close()
		chunkRepo.Close()
		backend.Close()
	})
	return chunkRepo, indexRepo
}

func embeddedChunk(text string, kbID int64, vector []float32) *core.EmbeddedChunk {
	return &core.EmbeddedChunk{
		Chunk:  core.Chunk{Text: text, KBID: kbID, Source: "测试文档.md"},
		Vector: vector,
	}
}

func TestChunkBasics(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	added, err := chunkRepo.AddChunks(ctx, embeddedChunk("王明是车站站长", 7, []float32{1, 0, 0}))
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.NotZero(t, added[0].Chunk.ID)

	retrieved, err := chunkRepo.GetChunk(ctx, added[0].Chunk.ID)
	require.NoError(t, err)
	assert.Equal(t, "王明是车站站长", retrieved.Chunk.Text)
	assert.Equal(t, []float32{1, 0, 0}, retrieved.Vector)
}

func TestAddChunksContentID(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	first, err := chunkRepo.AddChunks(ctx, embeddedChunk("相同内容", 1, nil))
	require.NoError(t, err)
	second, err := chunkRepo.AddChunks(ctx, embeddedChunk("相同内容", 1, nil))
	require.NoError(t, err)

	// Content-based IDs make re-ingestion idempotent.
	assert.Equal(t, first[0].Chunk.ID, second[0].Chunk.ID)
}

func TestAddChunksValidation(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	_, err := chunkRepo.AddChunks(ctx, embeddedChunk("", 1, nil))
	assert.ErrorIs(t, err, core.ErrInvalidChunk)

	_, err = chunkRepo.AddChunks(ctx, embeddedChunk("内容", 0, nil))
	assert.ErrorIs(t, err, core.ErrInvalidChunk)
}

func TestGetChunkNotFound(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)

	_, err := chunkRepo.GetChunk(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetChunksByKB(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	_, err := chunkRepo.AddChunks(ctx,
		embeddedChunk("知识库七的第一段", 7, []float32{1, 0}),
		embeddedChunk("知识库七的第二段", 7, []float32{0, 1}),
		embeddedChunk("知识库八的内容", 8, []float32{1, 1}),
	)
	require.NoError(t, err)

	chunks, err := chunkRepo.GetChunksByKB(ctx, 7)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	for _, c := range chunks {
		assert.Equal(t, int64(7), c.Chunk.KBID)
	}

	empty, err := chunkRepo.GetChunksByKB(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteChunks(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	added, err := chunkRepo.AddChunks(ctx, embeddedChunk("待删除内容", 7, nil))
	require.NoError(t, err)

	require.NoError(t, chunkRepo.DeleteChunks(ctx, added[0].Chunk.ID))

	_, err = chunkRepo.GetChunk(ctx, added[0].Chunk.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// KB index entry is gone as well.
	chunks, err := chunkRepo.GetChunksByKB(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	assert.ErrorIs(t, chunkRepo.DeleteChunks(ctx, added[0].Chunk.ID), storage.ErrNotFound)
}

func TestFindSimilarEmpty(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)

	results, err := chunkRepo.FindSimilar(context.Background(), []float32{0.1, 0.2}, 7, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilarOrdering(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	_, err := chunkRepo.AddChunks(ctx,
		embeddedChunk("与查询完全一致", 7, []float32{1, 0}),
		embeddedChunk("与查询方向相反", 7, []float32{-1, 0}),
		embeddedChunk("与查询正交", 7, []float32{0, 1}),
		embeddedChunk("其它知识库", 8, []float32{1, 0}),
	)
	require.NoError(t, err)

	results, err := chunkRepo.FindSimilar(ctx, []float32{1, 0}, 7, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "与查询完全一致", results[0].Chunk.Text)
	assert.InDelta(t, 0.0, results[0].Distance, 1e-6)
	assert.Equal(t, "与查询正交", results[1].Chunk.Text)
	assert.InDelta(t, 1.0, results[1].Distance, 1e-6)
	assert.Equal(t, "与查询方向相反", results[2].Chunk.Text)
	assert.InDelta(t, 2.0, results[2].Distance, 1e-6)
}

func TestFindSimilarLimit(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	_, err := chunkRepo.AddChunks(ctx,
		embeddedChunk("第一段", 7, []float32{1, 0}),
		embeddedChunk("第二段", 7, []float32{0.9, 0.1}),
		embeddedChunk("第三段", 7, []float32{0, 1}),
	)
	require.NoError(t, err)

	results, err := chunkRepo.FindSimilar(ctx, []float32{1, 0}, 7, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = chunkRepo.FindSimilar(ctx, []float32{1, 0}, 7, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestFindSimilarAllKBs(t *testing.T) {
	chunkRepo, _ := newMemoryRepos(t)
	ctx := context.Background()

	_, err := chunkRepo.AddChunks(ctx,
		embeddedChunk("知识库七", 7, []float32{1, 0}),
		embeddedChunk("知识库八", 8, []float32{0.9, 0.1}),
	)
	require.NoError(t, err)

	results, err := chunkRepo.FindSimilar(ctx, []float32{1, 0}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
