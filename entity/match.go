package entity

import (
	"strings"

	"github.com/lingxi-ai/retrieva/core"
)

// Per-type weights for entity match scoring. Person mentions carry the
// strongest retrieval signal in this domain, position titles the weakest.
var matchWeights = map[core.EntityType]float64{
	core.EntityPerson:       1.0,
	core.EntityTime:         0.9,
	core.EntityLocation:     0.8,
	core.EntityOrganization: 0.7,
	core.EntityPosition:     0.6,
}

// MatchScore computes a weighted Jaccard similarity between two entity
// sets in [0,1]. Only entity types present in the query set contribute;
// the score is normalized by the summed weights of those types, so a set
// matched against itself always scores 1.0.
func MatchScore(query, content core.EntitySet) float64 {
	if query == nil || content == nil {
		return 0.0
	}

	totalScore := 0.0
	totalWeight := 0.0

	for entityType, weight := range matchWeights {
		querySet := query[entityType]
		if len(querySet) == 0 {
			continue
		}
		contentSet := content[entityType]

		union := querySet.UnionCount(contentSet)
		if union == 0 {
			continue
		}
		intersection := querySet.IntersectCount(contentSet)
		totalScore += float64(intersection) / float64(union) * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0.0
	}
	return totalScore / totalWeight
}

// PersonRelevance scores how strongly content matches the person names in
// a query, in [0,1]. Each query name found verbatim in the content counts
// fully, with a bonus when the content uses appointment/removal
// vocabulary around it; the sum is normalized by the number of query
// names and capped at 1.
func (e *Extractor) PersonRelevance(query, content string) float64 {
	names := e.PersonNames(query)
	if len(names) == 0 {
		return 0.0
	}

	contextBonus := containsAnyOf(content, e.lex.PersonRelated)

	score := 0.0
	for name := range names {
		if strings.Contains(content, name) {
			score += 1.0
			if contextBonus {
				score += 0.5
			}
		}
	}

	score /= float64(len(names))
	return core.Clamp01(score)
}

// containsAnyOf reports whether text contains any member of the vocabulary.
func containsAnyOf(text string, vocabulary core.StringSet) bool {
	for word := range vocabulary {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
