package nlp

// Part-of-speech tags emitted by the segmentation toolkit for the
// grammatical categories the entity extractor cares about. The values
// follow the ictclas/jieba tag set used by the underlying dictionaries.
const (
	TagPersonName   = "nr" // person name
	TagPlaceName    = "ns" // place name
	TagOrganization = "nt" // organization name
	TagProperNoun   = "nz" // other proper noun
	TagTime         = "t"  // time word
)

// TaggedWord is a single token with its part-of-speech tag.
type TaggedWord struct {
	Text string
	Tag  string
}

// Tagger splits text into (token, part-of-speech) pairs.
// Implementations must be safe for concurrent use and must not fail:
// a token that cannot be tagged is emitted with an empty tag.
type Tagger interface {
	Tag(text string) []TaggedWord
}

// KeywordExtractor returns the top-n keywords of a text ranked by
// salience. Implementations must be safe for concurrent use.
// An empty slice is a valid result for texts with no extractable keywords.
type KeywordExtractor interface {
	TopKeywords(text string, n int) []string
}

// Analyzer bundles the two text-analysis capabilities the retrieval
// pipeline needs from a segmentation toolkit.
type Analyzer interface {
	Tagger
	KeywordExtractor
}
