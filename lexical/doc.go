// Package lexical provides TF-IDF cosine similarity between texts,
// independent of embedding models.
package lexical
