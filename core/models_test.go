package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("some chunk text")
		id2 := IDFromContent("some chunk text")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content produces different IDs", func(t *testing.T) {
		id1 := IDFromContent("text one")
		id2 := IDFromContent("text two")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		assert.NotPanics(t, func() { IDFromContent("") })
	})
}

func TestStringSet(t *testing.T) {
	a := NewStringSet("王明", "李华")
	b := NewStringSet("王明", "北京")

	assert.True(t, a.Has("王明"))
	assert.False(t, a.Has("北京"))
	assert.Equal(t, 1, a.IntersectCount(b))
	assert.Equal(t, 3, a.UnionCount(b))
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(NewStringSet("上海")))
	assert.Equal(t, []string{"李华", "王明"}, a.Values())
}

func TestNewEntitySet(t *testing.T) {
	es := NewEntitySet()

	// No entity type is ever absent, even with no matches.
	for _, typ := range EntityTypes {
		set, ok := es[typ]
		require.True(t, ok, "type %s missing", typ)
		assert.Empty(t, set)
	}
	assert.True(t, es.Empty())

	es.Add(EntityPerson, "王明")
	assert.False(t, es.Empty())
	assert.True(t, es[EntityPerson].Has("王明"))
}

func TestConfidenceString(t *testing.T) {
	assert.Equal(t, "low", ConfidenceLow.String())
	assert.Equal(t, "medium", ConfidenceMedium.String())
	assert.Equal(t, "high", ConfidenceHigh.String())
	assert.Equal(t, "unknown", Confidence(0).String())
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateChunk(&Chunk{Text: "content", KBID: 7})
		assert.NoError(t, err)
	})

	t.Run("nil chunk", func(t *testing.T) {
		err := ValidateChunk(nil)
		assert.ErrorIs(t, err, ErrInvalidChunk)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateChunk(&Chunk{KBID: 7})
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("non-positive kb id", func(t *testing.T) {
		err := ValidateChunk(&Chunk{Text: "content"})
		assert.ErrorIs(t, err, ErrInvalidKBID)
	})
}

func TestValidateTopK(t *testing.T) {
	assert.NoError(t, ValidateTopK(1))
	assert.ErrorIs(t, ValidateTopK(0), ErrInvalidTopK)
	assert.ErrorIs(t, ValidateTopK(-3), ErrInvalidTopK)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.62, Clamp01(0.62))
}
