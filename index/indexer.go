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

package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dossierlab/dossier/ai"
	"github.com/dossierlab/dossier/core"
	"github.com/dossierlab/dossier/source"
	"github.com/dossierlab/dossier/store"
)

const defaultBatchSize = 16

// Indexer drives the indexing pass: read rows from the source, normalize
// them into documents, embed the document texts and upsert the results into
// the collection. The pass is synchronous and processes one batch at a time;
// document IDs are stable across runs, so re-indexing refreshes entries
// instead of duplicating them.
type Indexer struct {
	source         source.RecordSource
	embedder       ai.Embedder
	collection     store.Collection
	batchSize      int
	skipFailed     bool
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithBatchSize sets how many documents are embedded and upserted per batch.
// Purely a performance knob; results are identical for any batch size.
func WithBatchSize(size int) Option {
	return func(ix *Indexer) {
		if size >= 1 {
			ix.batchSize = size
		}
	}
}

// WithSkipFailedBatches makes the indexer log and skip batches whose
// embedding call fails instead of aborting the run. Skipped documents keep
// whatever entry a previous run stored for them.
func WithSkipFailedBatches() Option {
	return func(ix *Indexer) {
		ix.skipFailed = true
	}
}

// WithProgress reports indexing progress to the writer every interval
// documents. No progress is printed when unset.
func WithProgress(w io.Writer, interval int) Option {
	return func(ix *Indexer) {
		ix.progressWriter = w
		ix.reportInterval = interval
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// NewIndexer creates a new Indexer.
func NewIndexer(src source.RecordSource, embedder ai.Embedder, collection store.Collection, opts ...Option) (*Indexer, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if collection == nil {
		return nil, ErrCollectionRequired
	}

	ix := &Indexer{
		source:     src,
		embedder:   embedder,
		collection: collection,
		batchSize:  defaultBatchSize,
		logger:     slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// Stats summarizes an indexing run.
type Stats struct {
	Persons        int // person rows read from the source
	Events         int // event rows read from the source
	Indexed        int // documents written to the collection
	SkippedBatches int // batches dropped because embedding failed
}

// Run executes one full indexing pass. By default any embedding failure
// aborts the run with the partial stats; WithSkipFailedBatches downgrades
// failures to logged skips.
func (ix *Indexer) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	docs, err := ix.loadDocuments(ctx, &stats)
	if err != nil {
		return stats, err
	}

	ix.logger.Info("starting indexing pass",
		"persons", stats.Persons, "events", stats.Events, "batch_size", ix.batchSize)

	var progress *progressTracker
	if ix.progressWriter != nil {
		progress = newProgressTracker(ix.progressWriter, len(docs), ix.reportInterval)
		defer progress.finish()
	}

	for start := 0; start < len(docs); start += ix.batchSize {
		end := min(start+ix.batchSize, len(docs))
		batch := docs[start:end]

		if err := ix.indexBatch(ctx, batch); err != nil {
			if !ix.skipFailed {
				return stats, fmt.Errorf("indexing documents %d-%d: %w", start, end-1, err)
			}
			stats.SkippedBatches++
			ix.logger.Warn("skipping failed batch",
				"first", batch[0].ID, "size", len(batch), "err", err)
			progress.add(len(batch))
			continue
		}
		stats.Indexed += len(batch)
		progress.add(len(batch))
	}

	ix.logger.Info("indexing pass complete",
		"indexed", stats.Indexed, "skipped_batches", stats.SkippedBatches)
	return stats, nil
}

// loadDocuments reads and normalizes every source row, persons first.
func (ix *Indexer) loadDocuments(ctx context.Context, stats *Stats) ([]*core.Document, error) {
	persons, err := ix.source.Persons(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading persons: %w", err)
	}
	events, err := ix.source.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	stats.Persons = len(persons)
	stats.Events = len(events)

	docs := make([]*core.Document, 0, len(persons)+len(events))
	for _, p := range persons {
		docs = append(docs, core.NormalizePerson(*p))
	}
	for _, e := range events {
		docs = append(docs, core.NormalizeEvent(*e))
	}
	return docs, nil
}

func (ix *Indexer) indexBatch(ctx context.Context, batch []*core.Document) error {
	texts := make([]string, len(batch))
	for i, doc := range batch {
		texts[i] = doc.Text
	}

	vectors, err := ix.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding batch: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding batch: got %d vectors for %d documents", len(vectors), len(batch))
	}

	for i, doc := range batch {
		doc.Vector = vectors[i]
	}
	if err := ix.collection.Upsert(ctx, batch...); err != nil {
		return fmt.Errorf("upserting batch: %w", err)
	}
	return nil
}
