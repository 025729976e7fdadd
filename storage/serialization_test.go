package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingxi-ai/retrieva/core"
)

func TestIDRoundTrip(t *testing.T) {
	id := core.IDFromContent("王明是车站站长")

	data := MarshalID(id)
	got, err := UnmarshalID(data)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestChunkRoundTrip(t *testing.T) {
	chunk := &core.EmbeddedChunk{
		Chunk: core.Chunk{
			ID:         core.IDFromContent("第一条 为加强铁路运输安全管理"),
			Text:       "第一条 为加强铁路运输安全管理，制定本条例。",
			KBID:       7,
			Source:     "安全管理条例.md",
			ChunkIndex: 3,
		},
		Vector: []float32{0.1, -0.5, 0.83, 0},
	}

	data := MarshalChunk(chunk)
	got, err := UnmarshalChunk(data)
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestChunkRoundTripEmptyVector(t *testing.T) {
	chunk := &core.EmbeddedChunk{
		Chunk: core.Chunk{ID: 1, Text: "内容", KBID: 2},
	}

	got, err := UnmarshalChunk(MarshalChunk(chunk))
	require.NoError(t, err)
	assert.Equal(t, chunk.Chunk, got.Chunk)
	assert.Empty(t, got.Vector)
}

func TestSummaryEntryRoundTrip(t *testing.T) {
	entry := &core.SummaryEntry{
		DocID:   "安全管理条例.md",
		KBID:    7,
		Summary: "规定铁路运输安全管理职责与处罚。",
		Vector:  []float32{0.2, 0.4, -0.1},
	}

	got, err := UnmarshalSummaryEntry(MarshalSummaryEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestChunkEntryRoundTrip(t *testing.T) {
	entry := &core.ChunkEntry{
		DocID:  "安全管理条例.md",
		KBID:   7,
		Chunks: []string{"第一条……", "第二条……"},
		Vectors: [][]float32{
			{0.1, 0.2},
			{-0.3, 0.4},
		},
	}

	got, err := UnmarshalChunkEntry(MarshalChunkEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestUnmarshalTruncatedData(t *testing.T) {
	chunk := &core.EmbeddedChunk{
		Chunk:  core.Chunk{ID: 42, Text: "截断测试数据", KBID: 1},
		Vector: []float32{1, 2, 3},
	}
	data := MarshalChunk(chunk)

	_, err := UnmarshalChunk(data[:len(data)/2])
	assert.Error(t, err)
}
