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


// Package nlp defines the lexical analysis contracts consumed by the
// retrieval core and the shared Lexicon configuration.
//
// The Tagger and KeywordExtractor interfaces abstract over the external
// segmentation toolkit (see the gse subpackage for the production
// implementation and mock for a deterministic test implementation).
//
// The Lexicon holds the process-wide, read-only dictionaries: synonym
// groups, stopwords, position titles, person-related vocabulary, and
// custom segmentation entries. It is loaded once at startup and is safe
// for unbounded concurrent reads.
package nlp
