package retrieva

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/lingxi-ai/retrieva/ai/mock"
	"github.com/lingxi-ai/retrieva/nlp"
	nlpmock "github.com/lingxi-ai/retrieva/nlp/mock"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	analyzer := nlpmock.NewAnalyzer(nlp.DefaultLexicon())
	analyzer.AddPerson("王明")
	analyzer.AddWord("车站", "n")
	analyzer.AddWord("站长", "nz")

	engine, err := NewEngine("",
		WithInMemoryStorage(),
		WithProvider(aimock.NewProvider()),
		WithAnalyzer(analyzer),
	)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngineLifecycle(t *testing.T) {
	engine := newTestEngine(t)

	assert.NotNil(t, engine.ChunkRepository())
	assert.NotNil(t, engine.IndexRepository())
	assert.NotNil(t, engine.Store())
	assert.NotNil(t, engine.Indexer())
}

func TestEngineFactories(t *testing.T) {
	engine := newTestEngine(t)

	retriever, err := engine.NewRetriever()
	require.NoError(t, err)
	assert.NotNil(t, retriever)

	evaluator, err := engine.NewEvaluator()
	require.NoError(t, err)
	assert.NotNil(t, evaluator)

	hyde, err := engine.NewHyDE()
	require.NoError(t, err)
	assert.NotNil(t, hyde)

	manager, err := engine.NewDialogueManager()
	require.NoError(t, err)
	assert.NotNil(t, manager)
}

func TestIndexAndRetrieve(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	text := "王明是车站站长。他负责车站的日常运营管理工作。"
	require.NoError(t, engine.IndexDocument(ctx, text, "station.md", 1))
	assert.Equal(t, 1, engine.Indexer().DocumentCount())

	retriever, err := engine.NewRetriever()
	require.NoError(t, err)

	// The mock embedder is deterministic, so an identical query lands on
	// the stored chunk either through the primary pass or the fallback.
	results, err := retriever.Retrieve(ctx, "王明是车站站长。他负责车站的日常运营管理工作。", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestIndexPersistenceAcrossLoad(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.IndexDocument(ctx, "车站在城东。", "geo.md", 1))

	// Reloading from the index repository reproduces the in-memory state.
	require.NoError(t, engine.LoadIndex(ctx))
	assert.Equal(t, 1, engine.Indexer().DocumentCount())
}

func TestRemoveDocument(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.IndexDocument(ctx, "车站在城东。", "geo.md", 1))
	require.NoError(t, engine.RemoveDocument(ctx, "geo.md"))
	assert.Zero(t, engine.Indexer().DocumentCount())
}
