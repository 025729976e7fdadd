package core

import (
	"encoding/binary"
	"sort"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is an immutable unit of retrievable text, scoped to one knowledge base.
// Chunks are owned by the vector store; the retrieval core only reads them.
type Chunk struct {
	ID         ID
	Text       string
	KBID       int64  // Knowledge-base scope; all retrieval filters on this
	Source     string // Originating document name
	ChunkIndex int    // Position within the source document
}

// EmbeddedChunk pairs a chunk with its embedding vector. This is the
// unit of persistence in the chunk store.
type EmbeddedChunk struct {
	Chunk  Chunk
	Vector []float32
}

// StringSet is an unordered set of surface strings.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value into the set.
func (s StringSet) Add(value string) {
	s[value] = struct{}{}
}

// Has reports whether the value is in the set.
func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// IntersectCount returns the number of values present in both sets.
func (s StringSet) IntersectCount(other StringSet) int {
	n := 0
	for v := range s {
		if other.Has(v) {
			n++
		}
	}
	return n
}

// UnionCount returns the number of distinct values across both sets.
func (s StringSet) UnionCount(other StringSet) int {
	n := len(s)
	for v := range other {
		if !s.Has(v) {
			n++
		}
	}
	return n
}

// Intersects reports whether the sets share at least one value.
func (s StringSet) Intersects(other StringSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for v := range small {
		if large.Has(v) {
			return true
		}
	}
	return false
}

// Values returns the set contents sorted lexicographically.
func (s StringSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// EntityType classifies a surface string extracted from text.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityLocation     EntityType = "location"
	EntityOrganization EntityType = "organization"
	EntityTime         EntityType = "time"
	EntityPosition     EntityType = "position"
)

// EntityTypes lists every entity type in a fixed order.
var EntityTypes = []EntityType{
	EntityPerson,
	EntityLocation,
	EntityOrganization,
	EntityTime,
	EntityPosition,
}

// EntitySet maps entity types to the surface strings found for each type.
// Every entity type is always present; types with no matches map to an
// empty set. An EntitySet is never mutated after construction.
type EntitySet map[EntityType]StringSet

// NewEntitySet creates an EntitySet with an empty set for every entity type.
func NewEntitySet() EntitySet {
	es := make(EntitySet, len(EntityTypes))
	for _, t := range EntityTypes {
		es[t] = make(StringSet)
	}
	return es
}

// Add records a surface string under the given entity type.
func (es EntitySet) Add(t EntityType, value string) {
	set, ok := es[t]
	if !ok {
		set = make(StringSet)
		es[t] = set
	}
	set.Add(value)
}

// Empty reports whether no entities of any type were found.
func (es EntitySet) Empty() bool {
	for _, set := range es {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// TimeType is the dominant temporal orientation found in a text.
type TimeType string

const (
	TimeTypeNone    TimeType = "none"
	TimeTypeCurrent TimeType = "current"
	TimeTypePast    TimeType = "past"
	TimeTypeFuture  TimeType = "future"
)

// TimeInfo holds the temporal expressions found in a text.
// Dates are normalized-format substrings, not parsed calendar dates.
type TimeInfo struct {
	Dates        StringSet
	RelativeTime StringSet
	Type         TimeType
}

// NewTimeInfo creates an empty TimeInfo with Type set to none.
func NewTimeInfo() TimeInfo {
	return TimeInfo{
		Dates:        make(StringSet),
		RelativeTime: make(StringSet),
		Type:         TimeTypeNone,
	}
}

// ScoredChunk is a retrieval candidate with its component scores.
// All component scores are in [0,1]; Final is a configured combination,
// also clamped to [0,1]. Created per request and discarded afterwards.
type ScoredChunk struct {
	Chunk    Chunk
	Semantic float64
	Keyword  float64
	Entity   float64
	Time     float64
	Final    float64
}

// Confidence is a coarse trust level for an answer built from retrieved chunks.
type Confidence int

const (
	ConfidenceLow Confidence = iota + 1
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the confidence level name.
func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "unknown"
	}
}

// SummaryEntry is the document-level tier of the hierarchical index.
// Entries are created once at ingestion and never updated in place;
// re-ingestion replaces the entry for that document.
type SummaryEntry struct {
	DocID   string
	KBID    int64
	Summary string
	Vector  []float32
}

// ChunkEntry is the chunk-level tier of the hierarchical index.
type ChunkEntry struct {
	DocID   string
	KBID    int64
	Chunks  []string
	Vectors [][]float32
}
