package nlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()

	t.Run("synonym lookup by canonical term", func(t *testing.T) {
		canonical, group, ok := lex.SynonymGroup("任命")
		require.True(t, ok)
		assert.Equal(t, "任命", canonical)
		assert.Contains(t, group, "担任")
	})

	t.Run("synonym lookup by group member", func(t *testing.T) {
		canonical, group, ok := lex.SynonymGroup("委任")
		require.True(t, ok)
		assert.Equal(t, "任命", canonical)
		assert.Contains(t, group, "就任")
	})

	t.Run("unknown term", func(t *testing.T) {
		_, _, ok := lex.SynonymGroup("铁路")
		assert.False(t, ok)
	})

	t.Run("stopwords", func(t *testing.T) {
		assert.True(t, lex.IsStopword("的"))
		assert.False(t, lex.IsStopword("职位"))
	})

	t.Run("vocabularies", func(t *testing.T) {
		assert.True(t, lex.IsPositionTitle("站长"))
		assert.True(t, lex.IsPersonRelated("免职"))
		assert.False(t, lex.IsPersonRelated("铁路"))
	})
}

func TestLoadLexicon(t *testing.T) {
	t.Run("overrides only provided sections", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "lexicon.yaml")
		content := "synonyms:\n  快速: [迅速, 高速]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		lex, err := LoadLexicon(path)
		require.NoError(t, err)

		canonical, _, ok := lex.SynonymGroup("迅速")
		require.True(t, ok)
		assert.Equal(t, "快速", canonical)

		// Replaced synonym table drops the defaults.
		_, _, ok = lex.SynonymGroup("任命")
		assert.False(t, ok)

		// Untouched sections keep the defaults.
		assert.True(t, lex.IsStopword("的"))
		assert.True(t, lex.IsPositionTitle("主任"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLexicon(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, ErrLexiconLoad)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))
		_, err := LoadLexicon(path)
		assert.ErrorIs(t, err, ErrLexiconLoad)
	})
}
