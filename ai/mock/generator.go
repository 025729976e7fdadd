package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/lingxi-ai/retrieva/ai"
)

// Generator is a test double for ai.Generator. Responses can be fixed
// per prompt substring, or fully overridden with GenerateFunc.
type Generator struct {
	mu        sync.Mutex
	callCount int
	responses map[string]string
	fallback  string

	// GenerateFunc overrides Generate when set.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

// NewGenerator creates a mock generator. Without configured responses it
// echoes the prompt back, which keeps summary round-trips meaningful.
func NewGenerator() *Generator {
	return &Generator{responses: make(map[string]string)}
}

// Respond registers a canned response returned when the prompt contains
// the given substring.
func (g *Generator) Respond(substring, response string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[substring] = response
}

// RespondAlways sets a response returned for every prompt with no
// matching substring rule.
func (g *Generator) RespondAlways(response string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fallback = response
}

// Generate returns the configured response for the prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.callCount++
	override := g.GenerateFunc
	fallback := g.fallback
	var matched string
	var found bool
	for substring, response := range g.responses {
		if strings.Contains(prompt, substring) {
			matched, found = response, true
			break
		}
	}
	g.mu.Unlock()

	if override != nil {
		return override(ctx, prompt)
	}
	if found {
		return matched, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return prompt, nil
}

// CallCount returns how many Generate calls have been made.
func (g *Generator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.callCount
}

var _ ai.Generator = (*Generator)(nil)
