package hindex

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/lingxi-ai/retrieva/ai/mock"
	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/storage/badger"
)

func newTestIndexer(t *testing.T, opts ...Option) (*Indexer, *aimock.Provider) {
	t.Helper()
	provider := aimock.NewProvider()
	idx, err := NewIndexer(provider.Embedder(), provider.Generator(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx, provider
}

func TestNewIndexerValidation(t *testing.T) {
	provider := aimock.NewProvider()

	_, err := NewIndexer(nil, provider.Generator())
	assert.Equal(t, ErrEmbedderRequired, err)

	_, err = NewIndexer(provider.Embedder(), nil)
	assert.Equal(t, ErrGeneratorRequired, err)
}

func TestAddDocumentValidation(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	assert.ErrorIs(t, idx.AddDocument(ctx, "", 7, []string{"内容"}), core.ErrEmptyDocID)
	assert.ErrorIs(t, idx.AddDocument(ctx, "doc", 7, nil), ErrNoChunks)
}

func TestAddDocumentAfterClose(t *testing.T) {
	provider := aimock.NewProvider()
	idx, err := NewIndexer(provider.Embedder(), provider.Generator())
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	// Submitting embed work to the released pool fails; the error must
	// surface cleanly with no entries left behind.
	err = idx.AddDocument(context.Background(), "doc", 7, []string{"第一段", "第二段"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submitting embed task")
	assert.Zero(t, idx.DocumentCount())
}

func TestAddAndSearch(t *testing.T) {
	idx, provider := newTestIndexer(t)
	ctx := context.Background()

	provider.MockGenerator.Respond("安全", "铁路安全管理规定")
	provider.MockGenerator.Respond("人事", "车站人事任免情况")

	require.NoError(t, idx.AddDocument(ctx, "安全条例.md", 7, []string{
		"第一条 安全管理总则。",
		"第二条 运输企业职责。",
	}))
	require.NoError(t, idx.AddDocument(ctx, "人事通知.md", 7, []string{
		"任命王明为车站站长。",
	}))
	assert.Equal(t, 2, idx.DocumentCount())

	// The mock embedder maps identical text to identical vectors, so the
	// exact chunk text is the best hit.
	hits, err := idx.Search(ctx, "任命王明为车站站长。", 7, 2, 3)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "任命王明为车站站长。", hits[0].Text)
	assert.Equal(t, "人事通知.md", hits[0].DocID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
}

func TestSearchScopedToKB(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	require.NoError(t, idx.AddDocument(ctx, "doc", 7, []string{"知识库七的内容"}))

	hits, err := idx.Search(ctx, "知识库七的内容", 8, 2, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchTopChunksLimit(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	require.NoError(t, idx.AddDocument(ctx, "doc", 7, []string{
		"第一段", "第二段", "第三段", "第四段",
	}))

	hits, err := idx.Search(ctx, "第一段", 7, 1, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	_, err = idx.Search(ctx, "第一段", 7, 1, 0)
	assert.ErrorIs(t, err, core.ErrInvalidTopK)
}

func TestSummaryFallbackOnGenerationFailure(t *testing.T) {
	idx, provider := newTestIndexer(t)
	provider.MockGenerator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model unavailable")
	}

	long := strings.Repeat("铁路安全管理条例内容。", 50)
	require.NoError(t, idx.AddDocument(context.Background(), "doc", 7, []string{long}))

	idx.mu.RLock()
	summary := idx.summaries["doc"].Summary
	idx.mu.RUnlock()

	// Falls back to a bounded prefix of the document text.
	assert.Equal(t, summaryFallbackLen, len([]rune(summary)))
	assert.True(t, strings.HasPrefix(long, summary))
}

func TestRemoveDocument(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	require.NoError(t, idx.AddDocument(ctx, "doc", 7, []string{"内容"}))
	require.NoError(t, idx.RemoveDocument(ctx, "doc"))
	assert.Zero(t, idx.DocumentCount())

	hits, err := idx.Search(ctx, "内容", 7, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestPersistenceRoundTrip(t *testing.T) {
	_, indexRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	first, _ := newTestIndexer(t, WithRepository(indexRepo))
	require.NoError(t, first.AddDocument(ctx, "doc", 7, []string{"持久化内容"}))

	// A fresh indexer over the same repository restores the document.
	second, _ := newTestIndexer(t, WithRepository(indexRepo))
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, 1, second.DocumentCount())

	hits, err := second.Search(ctx, "持久化内容", 7, 1, 3)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "持久化内容", hits[0].Text)
}
