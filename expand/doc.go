// Package expand widens natural-language queries with configured synonym
// groups and salience-ranked keywords before they reach the vector store.
package expand
