package retrieve

import (
	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/vectorstore"
)

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results.
type RetrievalMonitor interface {
	Start(query string, kbID int64)
	AfterQueryAnalysis(expanded string, entities core.EntitySet, timeInfo core.TimeInfo, keywords []string)
	AfterVectorSearch(matches []vectorstore.Match)
	AfterScoring(candidates []core.ScoredChunk)
	AfterFiltering(kept []core.ScoredChunk)
	FallbackTriggered(keywords []string)
	Finish(results []core.ScoredChunk)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int64) {}
func (n *noopMonitor) AfterQueryAnalysis(_ string, _ core.EntitySet, _ core.TimeInfo, _ []string) {
}
func (n *noopMonitor) AfterVectorSearch(_ []vectorstore.Match)  {}
func (n *noopMonitor) AfterScoring(_ []core.ScoredChunk)        {}
func (n *noopMonitor) AfterFiltering(_ []core.ScoredChunk)      {}
func (n *noopMonitor) FallbackTriggered(_ []string)             {}
func (n *noopMonitor) Finish(_ []core.ScoredChunk)              {}
