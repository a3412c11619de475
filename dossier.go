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

// Package dossier wires the retrieval-augmented question answering pipeline:
// a relational source of person and event rows, an embedding gateway, a
// persistent document store, and a grounded answer generator.
package dossier

import (
	"context"
	"log/slog"

	"github.com/dossierlab/dossier/ai"
	"github.com/dossierlab/dossier/ai/ollama"
	"github.com/dossierlab/dossier/answer"
	"github.com/dossierlab/dossier/core"
	"github.com/dossierlab/dossier/index"
	"github.com/dossierlab/dossier/search"
	"github.com/dossierlab/dossier/source/sqlite"
	"github.com/dossierlab/dossier/store"
	storebadger "github.com/dossierlab/dossier/store/badger"
)

// Pipeline owns every component of the question answering system and their
// shared lifecycle.
type Pipeline struct {
	cfg        *Config
	src        *sqlite.Source
	backend    *storebadger.Backend
	collection store.Collection
	provider   ai.Provider
	retriever  *search.Retriever
	generator  *answer.Generator
	logger     *slog.Logger
}

// Open builds the pipeline from the configuration. A nil config uses all
// defaults. Every resource opened so far is released when a later step
// fails.
func Open(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	backend, err := storebadger.OpenBackend(cfg.StorePath, false)
	if err != nil {
		src.Close()
		return nil, err
	}

	collection, err := storebadger.OpenCollection(backend, cfg.Collection,
		storebadger.WithMetric(cfg.Metric),
		storebadger.WithEmbeddingModel(cfg.AI.EmbeddingModel))
	if err != nil {
		backend.Close()
		src.Close()
		return nil, err
	}

	provider, err := ollama.NewProvider(cfg.AI)
	if err != nil {
		backend.Close()
		src.Close()
		return nil, err
	}

	retriever, err := search.NewRetriever(provider.Embedder(), collection,
		search.WithDefaultTopK(cfg.TopK))
	if err != nil {
		provider.Close()
		backend.Close()
		src.Close()
		return nil, err
	}

	generator, err := answer.NewGenerator(provider.Completer())
	if err != nil {
		provider.Close()
		backend.Close()
		src.Close()
		return nil, err
	}

	return &Pipeline{
		cfg:        cfg,
		src:        src,
		backend:    backend,
		collection: collection,
		provider:   provider,
		retriever:  retriever,
		generator:  generator,
		logger:     slog.Default(),
	}, nil
}

// Close releases the pipeline's resources.
func (p *Pipeline) Close() error {
	if err := p.provider.Close(); err != nil {
		p.logger.Error("error closing AI provider", "err", err)
	}
	if err := p.src.Close(); err != nil {
		p.logger.Error("error closing record source", "err", err)
		return err
	}
	if err := p.backend.Close(); err != nil {
		p.logger.Error("error closing document store", "err", err)
		return err
	}
	return nil
}

// Seed loads the built-in sample dataset into the relational source.
func (p *Pipeline) Seed(ctx context.Context) error {
	return p.src.SeedSampleData(ctx)
}

// Index runs one full indexing pass over the source.
func (p *Pipeline) Index(ctx context.Context, opts ...index.Option) (index.Stats, error) {
	ix, err := index.NewIndexer(p.src, p.provider.Embedder(), p.collection, opts...)
	if err != nil {
		return index.Stats{}, err
	}
	return ix.Run(ctx)
}

// Retrieve returns the k most similar documents to the query. k <= 0 uses
// the configured TopK.
func (p *Pipeline) Retrieve(ctx context.Context, query string, k int) ([]*core.Match, error) {
	return p.retriever.Retrieve(ctx, query, k)
}

// Answer is one answered question with the context it was grounded on.
type Answer struct {
	Text    string
	Matches []*core.Match
}

// Ask retrieves context for the question and generates a grounded answer.
func (p *Pipeline) Ask(ctx context.Context, question string) (*Answer, error) {
	matches, err := p.retriever.Retrieve(ctx, question, p.cfg.TopK)
	if err != nil {
		return nil, err
	}

	text, err := p.generator.Generate(ctx, question, matches)
	if err != nil {
		return nil, err
	}

	return &Answer{Text: text, Matches: matches}, nil
}

// Collection exposes the underlying document collection.
func (p *Pipeline) Collection() store.Collection {
	return p.collection
}

// Source exposes the underlying record source.
func (p *Pipeline) Source() *sqlite.Source {
	return p.src
}
