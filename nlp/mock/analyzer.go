package mock

import (
	"sort"
	"unicode"

	"github.com/lingxi-ai/retrieva/nlp"
)

// Analyzer is a deterministic nlp.Tagger and nlp.KeywordExtractor for
// tests. It segments text by longest match against a configured
// vocabulary, so tests control exactly which tokens and tags come out.
type Analyzer struct {
	vocab       map[string]string   // word → part-of-speech tag
	keywords    map[string][]string // exact text → fixed keyword override
	lex         *nlp.Lexicon
	maxWordRune int
}

var (
	_ nlp.Tagger           = (*Analyzer)(nil)
	_ nlp.KeywordExtractor = (*Analyzer)(nil)
)

// NewAnalyzer creates a mock analyzer backed by the given lexicon.
// The lexicon's synonym terms, position titles, and person-related
// vocabulary are pre-registered as plain nouns so they segment cleanly.
func NewAnalyzer(lex *nlp.Lexicon) *Analyzer {
	if lex == nil {
		lex = nlp.DefaultLexicon()
	}
	a := &Analyzer{
		vocab:    make(map[string]string),
		keywords: make(map[string][]string),
		lex:      lex,
	}
	for canonical, members := range lex.Synonyms {
		a.AddWord(canonical, "n")
		for _, m := range members {
			a.AddWord(m, "n")
		}
	}
	for title := range lex.PositionTitles {
		a.AddWord(title, nlp.TagProperNoun)
	}
	for word := range lex.PersonRelated {
		a.AddWord(word, "v")
	}
	for _, word := range lex.CustomWords {
		a.AddWord(word, nlp.TagProperNoun)
	}
	for word := range lex.Stopwords {
		a.AddWord(word, "u")
	}
	return a
}

// AddWord registers a vocabulary entry with its tag.
func (a *Analyzer) AddWord(word, tag string) {
	a.vocab[word] = tag
	if n := len([]rune(word)); n > a.maxWordRune {
		a.maxWordRune = n
	}
}

// AddPerson registers a person name (tag nr).
func (a *Analyzer) AddPerson(names ...string) {
	for _, name := range names {
		a.AddWord(name, nlp.TagPersonName)
	}
}

// AddPlace registers a place name (tag ns).
func (a *Analyzer) AddPlace(names ...string) {
	for _, name := range names {
		a.AddWord(name, nlp.TagPlaceName)
	}
}

// AddOrganization registers an organization name (tag nt).
func (a *Analyzer) AddOrganization(names ...string) {
	for _, name := range names {
		a.AddWord(name, nlp.TagOrganization)
	}
}

// SetKeywords fixes the keyword list returned for an exact input text,
// bypassing frequency ranking.
func (a *Analyzer) SetKeywords(text string, keywords ...string) {
	a.keywords[text] = keywords
}

// Tag segments text by longest vocabulary match. Runs of text not in the
// vocabulary degrade to single-rune tokens with an empty tag; punctuation
// and whitespace are skipped.
func (a *Analyzer) Tag(text string) []nlp.TaggedWord {
	runes := []rune(text)
	var words []nlp.TaggedWord
	for i := 0; i < len(runes); {
		r := runes[i]
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			i++
			continue
		}
		matched := false
		maxLen := a.maxWordRune
		if rest := len(runes) - i; rest < maxLen {
			maxLen = rest
		}
		for l := maxLen; l >= 1; l-- {
			candidate := string(runes[i : i+l])
			if tag, ok := a.vocab[candidate]; ok {
				words = append(words, nlp.TaggedWord{Text: candidate, Tag: tag})
				i += l
				matched = true
				break
			}
		}
		if !matched {
			words = append(words, nlp.TaggedWord{Text: string(r)})
			i++
		}
	}
	return words
}

// TopKeywords returns a fixed override when one is registered, otherwise
// the most frequent non-stopword vocabulary tokens in the text.
func (a *Analyzer) TopKeywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	if fixed, ok := a.keywords[text]; ok {
		if len(fixed) > n {
			return fixed[:n]
		}
		return fixed
	}

	counts := make(map[string]int)
	for _, w := range a.Tag(text) {
		if w.Tag == "" || w.Tag == "u" || a.lex.IsStopword(w.Text) {
			continue
		}
		counts[w.Text]++
	}

	keywords := make([]string, 0, len(counts))
	for w := range counts {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}
