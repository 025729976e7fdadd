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


package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted core types. Vectors use raw fixed-size
// float32 encoding; everything else uses varint/ordinary encodings.
var (
	IDMUS            = idMUS{}
	ChunkMUS         = chunkMUS{}
	EmbeddedChunkMUS = embeddedChunkMUS{}
	SummaryEntryMUS  = summaryEntryMUS{}
	ChunkEntryMUS    = chunkEntryMUS{}

	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
	vectorsMUS      = ord.NewSliceSer[[]float32](float32SliceMUS)
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	return ID(num), n, nil
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += varint.Int64.Marshal(v.KBID, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	return
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	var n1 int
	v.ID, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.KBID, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = IDMUS.Size(v.ID)
	size += ord.String.Size(v.Text)
	size += varint.Int64.Size(v.KBID)
	size += ord.String.Size(v.Source)
	size += varint.Int.Size(v.ChunkIndex)
	return
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}

type embeddedChunkMUS struct{}

func (s embeddedChunkMUS) Marshal(v EmbeddedChunk, bs []byte) (n int) {
	n = ChunkMUS.Marshal(v.Chunk, bs)
	n += float32SliceMUS.Marshal(v.Vector, bs[n:])
	return
}

func (s embeddedChunkMUS) Unmarshal(bs []byte) (v EmbeddedChunk, n int, err error) {
	var n1 int
	v.Chunk, n, err = ChunkMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s embeddedChunkMUS) Size(v EmbeddedChunk) (size int) {
	return ChunkMUS.Size(v.Chunk) + float32SliceMUS.Size(v.Vector)
}

func (s embeddedChunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ChunkMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = float32SliceMUS.Skip(bs[n:])
	n += n1
	return
}

type summaryEntryMUS struct{}

func (s summaryEntryMUS) Marshal(v SummaryEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocID, bs)
	n += varint.Int64.Marshal(v.KBID, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += float32SliceMUS.Marshal(v.Vector, bs[n:])
	return
}

func (s summaryEntryMUS) Unmarshal(bs []byte) (v SummaryEntry, n int, err error) {
	var n1 int
	v.DocID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.KBID, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s summaryEntryMUS) Size(v SummaryEntry) (size int) {
	size = ord.String.Size(v.DocID)
	size += varint.Int64.Size(v.KBID)
	size += ord.String.Size(v.Summary)
	size += float32SliceMUS.Size(v.Vector)
	return
}

func (s summaryEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = float32SliceMUS.Skip(bs[n:])
	n += n1
	return
}

type chunkEntryMUS struct{}

func (s chunkEntryMUS) Marshal(v ChunkEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocID, bs)
	n += varint.Int64.Marshal(v.KBID, bs[n:])
	n += stringSliceMUS.Marshal(v.Chunks, bs[n:])
	n += vectorsMUS.Marshal(v.Vectors, bs[n:])
	return
}

func (s chunkEntryMUS) Unmarshal(bs []byte) (v ChunkEntry, n int, err error) {
	var n1 int
	v.DocID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.KBID, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Chunks, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vectors, n1, err = vectorsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkEntryMUS) Size(v ChunkEntry) (size int) {
	size = ord.String.Size(v.DocID)
	size += varint.Int64.Size(v.KBID)
	size += stringSliceMUS.Size(v.Chunks)
	size += vectorsMUS.Size(v.Vectors)
	return
}

func (s chunkEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorsMUS.Skip(bs[n:])
	n += n1
	return
}

// Interface assertions keep the serializers aligned with mus-go.
var (
	_ mus.Serializer[ID]            = IDMUS
	_ mus.Serializer[Chunk]         = ChunkMUS
	_ mus.Serializer[EmbeddedChunk] = EmbeddedChunkMUS
	_ mus.Serializer[SummaryEntry]  = SummaryEntryMUS
	_ mus.Serializer[ChunkEntry]    = ChunkEntryMUS
)
