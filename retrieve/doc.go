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


// Package retrieve implements hybrid retrieval over a knowledge-base
// scoped vector store: synonym-expanded and entity-biased querying,
// multi-signal candidate scoring, threshold filtering, near-duplicate
// removal, and relaxed keyword fallback when the primary pass finds
// nothing.
package retrieve
