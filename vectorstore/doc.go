// Package vectorstore defines the vector search port used by retrieval,
// with a BadgerDB-backed implementation in local and an adapter for
// langchaingo vector stores in langchain.
package vectorstore
