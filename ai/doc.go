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


// Package ai defines the embedding and text generation contracts the
// retrieval core depends on, plus shared provider configuration.
//
// Production implementations live in the openai subpackage (any
// OpenAI-compatible endpoint); deterministic test doubles live in mock.
package ai
