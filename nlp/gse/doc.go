// Package gse adapts the go-ego/gse segmentation toolkit to the nlp
// contracts. It provides jieba-compatible part-of-speech tags and
// TF-IDF keyword salience ranking for Chinese text.
package gse
