// Copyright 2026 Dossier Labs
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

package store

import "errors"

var (
	// ErrNotFound indicates that the requested entry was not found.
	ErrNotFound = errors.New("entry not found")

	// ErrInvalidQuery indicates invalid query parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrEmptyCollectionName indicates a collection was opened without a name.
	ErrEmptyCollectionName = errors.New("collection name cannot be empty")

	// ErrMissingVector indicates an upserted document carries no embedding.
	ErrMissingVector = errors.New("document has no embedding vector")

	// ErrDimensionMismatch indicates a vector whose dimension differs from
	// the collection's. Mixing embedding models invalidates the store's
	// distance semantics, so this is always rejected.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrMetricMismatch indicates an existing collection was reopened with a
	// different distance metric. The metric is fixed at creation time.
	ErrMetricMismatch = errors.New("collection metric mismatch")

	// ErrModelMismatch indicates an existing collection was reopened with a
	// different embedding model declared.
	ErrModelMismatch = errors.New("collection embedding model mismatch")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
