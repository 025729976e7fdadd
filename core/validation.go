package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - KBID must be positive
//
// NOT validated:
//   - ID (0 is valid; content IDs are assigned by storage)
//   - ChunkIndex (0 is a valid first position)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}
	if chunk.KBID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidKBID)
	}
	return nil
}

// ValidateTopK validates a caller-supplied result count.
// A non-positive top-k is caller misuse, not a runtime condition.
func ValidateTopK(topK int) error {
	if topK <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	return nil
}

// Clamp01 clamps a score to the [0,1] interval.
func Clamp01(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
