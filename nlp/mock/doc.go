// Package mock provides a deterministic analyzer for testing components
// that depend on segmentation, tagging, or keyword extraction without
// loading the full gse dictionaries.
package mock
