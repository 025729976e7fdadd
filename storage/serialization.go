// Copyright 2025 Lingxi AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/lingxi-ai/retrieva/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalChunk serializes an EmbeddedChunk to bytes.
func MarshalChunk(chunk *core.EmbeddedChunk) []byte {
	buf := make([]byte, core.EmbeddedChunkMUS.Size(*chunk))
	core.EmbeddedChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes an EmbeddedChunk from bytes.
func UnmarshalChunk(data []byte) (*core.EmbeddedChunk, error) {
	chunk, _, err := core.EmbeddedChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalSummaryEntry serializes a SummaryEntry to bytes.
func MarshalSummaryEntry(entry *core.SummaryEntry) []byte {
	buf := make([]byte, core.SummaryEntryMUS.Size(*entry))
	core.SummaryEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalSummaryEntry deserializes a SummaryEntry from bytes.
func UnmarshalSummaryEntry(data []byte) (*core.SummaryEntry, error) {
	entry, _, err := core.SummaryEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarshalChunkEntry serializes a ChunkEntry to bytes.
func MarshalChunkEntry(entry *core.ChunkEntry) []byte {
	buf := make([]byte, core.ChunkEntryMUS.Size(*entry))
	core.ChunkEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalChunkEntry deserializes a ChunkEntry from bytes.
func UnmarshalChunkEntry(data []byte) (*core.ChunkEntry, error) {
	entry, _, err := core.ChunkEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
