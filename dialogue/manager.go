package dialogue

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/entity"
)

const (
	// DefaultMaxTurns bounds the retained conversation history.
	DefaultMaxTurns = 5

	// followUpThreshold is the minimum entity overlap for a query to
	// count as a follow-up to the recent conversation.
	followUpThreshold = 0.2
)

// Turn is one completed query/answer exchange.
type Turn struct {
	Query    string
	Answer   string
	Entities core.EntitySet
}

// Manager keeps a bounded window of conversation turns and the entities
// they mentioned, so follow-up queries can be recognized and given
// context. Safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	turns     []Turn
	maxTurns  int
	extractor *entity.Extractor
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxTurns sets the history window size.
func WithMaxTurns(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxTurns = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a dialogue context manager.
func NewManager(extractor *entity.Extractor, opts ...Option) (*Manager, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	m := &Manager{
		maxTurns:  DefaultMaxTurns,
		extractor: extractor,
		logger:    slog.Default().With("component", "dialogue"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// AddTurn records a completed exchange, evicting the oldest turn when
// the window is full.
func (m *Manager) AddTurn(query, answer string) {
	entities := m.extractor.Extract(query + " " + answer)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, Turn{Query: query, Answer: answer, Entities: entities})
	if len(m.turns) > m.maxTurns {
		m.turns = m.turns[len(m.turns)-m.maxTurns:]
	}
}

// History returns a copy of the retained turns, oldest first.
func (m *Manager) History() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := make([]Turn, len(m.turns))
	copy(history, m.turns)
	return history
}

// Entities returns the merged entity memory across the retained turns.
func (m *Manager) Entities() core.EntitySet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mergedEntitiesLocked()
}

// Relevance scores how strongly a query relates to the recent
// conversation via entity overlap. Zero when there is no history.
func (m *Manager) Relevance(query string) float64 {
	queryEntities := m.extractor.Extract(query)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.turns) == 0 {
		return 0
	}
	return entity.MatchScore(queryEntities, m.mergedEntitiesLocked())
}

// IsFollowUp reports whether the query continues the recent conversation.
func (m *Manager) IsFollowUp(query string) bool {
	return m.Relevance(query) >= followUpThreshold
}

// ContextFor returns recent exchanges as prompt context when the query
// is a follow-up, and an empty string otherwise.
func (m *Manager) ContextFor(query string) string {
	if !m.IsFollowUp(query) {
		return ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	for _, turn := range m.turns {
		b.WriteString("问：")
		b.WriteString(turn.Query)
		b.WriteString("\n答：")
		b.WriteString(turn.Answer)
		b.WriteString("\n")
	}
	return b.String()
}

// Clear drops all retained history.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}

// mergedEntitiesLocked merges entity sets across turns. Caller holds mu.
func (m *Manager) mergedEntitiesLocked() core.EntitySet {
	merged := core.NewEntitySet()
	for _, turn := range m.turns {
		for entityType, values := range turn.Entities {
			for value := range values {
				merged.Add(entityType, value)
			}
		}
	}
	return merged
}
