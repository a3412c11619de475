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

package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dossierlab/dossier/ai"
	"github.com/dossierlab/dossier/core"
	"github.com/dossierlab/dossier/store"
)

// DefaultTopK is the number of context documents retrieved when the caller
// does not ask for a specific count.
const DefaultTopK = 3

// Retriever finds the stored documents most similar to a question.
// One retrieval is exactly one embedding call followed by one collection
// query; the query text goes through the same flattening as indexed text so
// both sides see the same serialization.
type Retriever struct {
	embedder   ai.Embedder
	collection store.Collection
	defaultK   int
	logger     *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithDefaultTopK sets the result count used when Retrieve is called with
// k <= 0. Default is DefaultTopK.
func WithDefaultTopK(k int) Option {
	return func(r *Retriever) {
		if k >= 1 {
			r.defaultK = k
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder ai.Embedder, collection store.Collection, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if collection == nil {
		return nil, ErrCollectionRequired
	}

	r := &Retriever{
		embedder:   embedder,
		collection: collection,
		defaultK:   DefaultTopK,
		logger:     slog.Default().With("component", "retriever"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Retrieve returns up to k documents ordered by ascending distance from the
// query. k <= 0 falls back to the configured default.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]*core.Match, error) {
	return r.RetrieveWithMonitor(ctx, query, k, nil)
}

// RetrieveWithMonitor is Retrieve with observation hooks for each stage.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, k int, monitor RetrievalMonitor) ([]*core.Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if k <= 0 {
		k = r.defaultK
	}

	monitor.Start(query)

	vector, err := r.embedder.EmbedText(ctx, core.FlattenText(query))
	if err != nil {
		r.logger.Error("error embedding query", "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(vector)

	matches, err := r.collection.Query(ctx, vector, k)
	if err != nil {
		r.logger.Error("error querying collection", "collection", r.collection.Name(), "err", err)
		return nil, err
	}

	r.logger.Debug("retrieved context documents", "query", query, "k", k, "hits", len(matches))
	monitor.Finish(matches)
	return matches, nil
}
