package retrieve

import "github.com/lingxi-ai/retrieva/core"

// combine turns component scores into a final score under the active
// scoring policy. The mean policy averages the three signals the scorer
// always trusts; the weighted policy additionally folds in temporal
// relevance with named weights.
func (r *Retriever) combine(scored core.ScoredChunk) float64 {
	switch r.cfg.Scoring {
	case ScoringWeighted:
		w := r.cfg.Weights
		return core.Clamp01(
			w.Semantic*scored.Semantic +
				w.Keyword*scored.Keyword +
				w.Entity*scored.Entity +
				w.Time*scored.Time,
		)
	default:
		return core.Clamp01((scored.Semantic + scored.Keyword + scored.Entity) / 3)
	}
}
