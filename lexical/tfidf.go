package lexical

import (
	"math"

	"github.com/lingxi-ai/retrieva/nlp"
)

// TFIDF computes term-frequency / inverse-document-frequency cosine
// similarity between two texts. It is a lexical-statistics signal,
// deliberately independent of any embedding model, used to sanity-check
// and re-rank embedding-based retrieval.
//
// The computation mirrors the classic smoothed formulation: idf =
// ln((1+n)/(1+df)) + 1 over the two input documents, L2-normalized
// vectors, cosine as the dot product.
type TFIDF struct {
	tagger  nlp.Tagger
	bigrams bool
}

// Option configures a TFIDF scorer.
type Option func(*TFIDF)

// WithBigrams additionally counts adjacent token pairs as terms,
// tightening the match for multi-token phrases.
func WithBigrams(enabled bool) Option {
	return func(t *TFIDF) {
		t.bigrams = enabled
	}
}

// NewTFIDF creates a TF-IDF cosine scorer over the given tokenizer.
func NewTFIDF(tagger nlp.Tagger, opts ...Option) (*TFIDF, error) {
	if tagger == nil {
		return nil, ErrTaggerRequired
	}
	t := &TFIDF{tagger: tagger}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Cosine returns the TF-IDF cosine similarity of two texts in [0,1].
// Texts with no extractable terms score 0.
func (t *TFIDF) Cosine(textA, textB string) float64 {
	termsA := t.terms(textA)
	termsB := t.terms(textB)
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0.0
	}

	countsA := termCounts(termsA)
	countsB := termCounts(termsB)

	// Document frequency over the two-document corpus.
	df := make(map[string]int, len(countsA)+len(countsB))
	for term := range countsA {
		df[term]++
	}
	for term := range countsB {
		df[term]++
	}

	const n = 2.0 // corpus size
	idf := func(term string) float64 {
		return math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vecA := make(map[string]float64, len(countsA))
	vecB := make(map[string]float64, len(countsB))
	var normA, normB float64
	for term, count := range countsA {
		w := float64(count) * idf(term)
		vecA[term] = w
		normA += w * w
	}
	for term, count := range countsB {
		w := float64(count) * idf(term)
		vecB[term] = w
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	dot := 0.0
	for term, wa := range vecA {
		if wb, ok := vecB[term]; ok {
			dot += wa * wb
		}
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// terms tokenizes a text, optionally adding adjacent-pair bigrams.
func (t *TFIDF) terms(text string) []string {
	words := t.tagger.Tag(text)
	terms := make([]string, 0, len(words)*2)
	for _, w := range words {
		terms = append(terms, w.Text)
	}
	if t.bigrams {
		for i := 0; i+1 < len(words); i++ {
			terms = append(terms, words[i].Text+words[i+1].Text)
		}
	}
	return terms
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}
