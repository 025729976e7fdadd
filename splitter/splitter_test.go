package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmpty(t *testing.T) {
	s := New()

	chunks, err := s.Split("")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = s.Split("\n\n   \n")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitShortText(t *testing.T) {
	s := New()

	chunks, err := s.Split("第一条 为加强铁路运输安全管理，制定本条例。")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "第一条 为加强铁路运输安全管理，制定本条例。", chunks[0])
}

func TestSplitRemovesBlankLines(t *testing.T) {
	s := New()

	chunks, err := s.Split("第一段内容。\n\n\n第二段内容。")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.NotContains(t, chunk, "\n\n")
	}
}

func TestSplitLongText(t *testing.T) {
	s := New(WithChunkSize(50), WithChunkOverlap(10))

	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("铁路运输企业应当加强安全管理，落实安全生产责任制。")
	}

	chunks, err := s.Split(b.String())
	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
	}
}

func TestSplitDocument(t *testing.T) {
	s := New(WithChunkSize(50), WithChunkOverlap(0))

	text := "第一条 安全管理总则。\n第二条 运输企业职责。\n第三条 监督检查规定。"
	chunks, err := s.SplitDocument(text, "条例.md", 7)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.Equal(t, int64(7), chunk.KBID)
		assert.Equal(t, "条例.md", chunk.Source)
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.NotZero(t, chunk.ID)
	}
}
