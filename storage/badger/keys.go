package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/lingxi-ai/retrieva/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix = "churec"
	chunkKBPrefix     = "churecb"
	summaryPrefix     = "idxsum"
	chunkEntryPrefix  = "idxchk"
)

// makeChunkKey generates a key for an embedded chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkKBKey generates a composite key for the knowledge-base index.
// Format: prefix:kbID:chunkID
func makeChunkKBKey(kbID int64, id core.ID) []byte {
	prefix := chunkKBPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for kbID + 8 bytes for chunk ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(kbID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkKBKey generates a partial key for scanning one
// knowledge base. Format: prefix:kbID
func makePartialChunkKBKey(kbID int64) []byte {
	prefix := chunkKBPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for kbID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(kbID))
	return buf
}

// makeSummaryKey generates a key for a document summary entry.
func makeSummaryKey(docID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", summaryPrefix, docID))
}

// makeChunkEntryKey generates a key for a document chunk entry.
func makeChunkEntryKey(docID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", chunkEntryPrefix, docID))
}
