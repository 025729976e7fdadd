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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidKBID indicates a non-positive knowledge-base identifier.
	ErrInvalidKBID = errors.New("knowledge-base id must be positive")

	// ErrInvalidTopK indicates a non-positive result count was requested.
	ErrInvalidTopK = errors.New("top-k must be positive")

	// ErrEmptyDocID indicates a document identifier is empty.
	ErrEmptyDocID = errors.New("document id cannot be empty")
)
