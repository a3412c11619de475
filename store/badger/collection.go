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

package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dossierlab/dossier/core"
	"github.com/dossierlab/dossier/store"
)

// Collection implements store.Collection on a BadgerDB backend.
//
// Each collection owns a manifest key recording its metric, embedding model
// and pinned dimension, plus one key per document. Queries are exhaustive
// prefix scans; there is no approximate index.
type Collection struct {
	backend *Backend
	name    string
}

var _ store.Collection = (*Collection)(nil)

// CollectionOption configures OpenCollection.
type CollectionOption func(*collectionConfig)

type collectionConfig struct {
	metric store.Metric
	model  string
}

// WithMetric sets the distance metric for a newly created collection. When
// the collection already exists the declared metric must match the stored
// one.
func WithMetric(m store.Metric) CollectionOption {
	return func(c *collectionConfig) {
		c.metric = m
	}
}

// WithEmbeddingModel declares the embedding model entries are produced
// with. When the collection already carries a model the declared one must
// match it.
func WithEmbeddingModel(model string) CollectionOption {
	return func(c *collectionConfig) {
		c.model = model
	}
}

// OpenCollection opens the named collection, creating its manifest on first
// use. Opening an existing collection with the same options is idempotent.
func OpenCollection(backend *Backend, name string, opts ...CollectionOption) (*Collection, error) {
	if name == "" {
		return nil, store.ErrEmptyCollectionName
	}

	cfg := collectionConfig{metric: store.MetricCosine}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.metric.Valid() {
		return nil, fmt.Errorf("collection %q: unknown metric %q", name, cfg.metric)
	}

	c := &Collection{backend: backend, name: name}

	err := backend.WithTx(func(tx *badger.Txn) error {
		manifest, err := c.readManifest(tx)
		if errors.Is(err, store.ErrNotFound) {
			manifest = &store.Manifest{
				Name:           name,
				Metric:         cfg.metric,
				EmbeddingModel: cfg.model,
				CreatedAt:      time.Now().UTC(),
			}
			if err := c.writeManifest(tx, manifest); err != nil {
				return err
			}
			return tx.Commit()
		}
		if err != nil {
			return err
		}

		if manifest.Metric != cfg.metric {
			return fmt.Errorf("%w: collection %q stores %q, opened with %q",
				store.ErrMetricMismatch, name, manifest.Metric, cfg.metric)
		}
		if cfg.model != "" && manifest.EmbeddingModel != "" && manifest.EmbeddingModel != cfg.model {
			return fmt.Errorf("%w: collection %q stores %q, opened with %q",
				store.ErrModelMismatch, name, manifest.EmbeddingModel, cfg.model)
		}
		// Adopt the declared model when the manifest predates one.
		if cfg.model != "" && manifest.EmbeddingModel == "" {
			manifest.EmbeddingModel = cfg.model
			if err := c.writeManifest(tx, manifest); err != nil {
				return err
			}
			return tx.Commit()
		}
		return nil
	}, true)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Manifest returns a copy of the collection's stored manifest.
func (c *Collection) Manifest() (*store.Manifest, error) {
	var manifest *store.Manifest
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		manifest, err = c.readManifest(tx)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// Upsert inserts or replaces documents by ID. The first upserted vector pins
// the collection's dimension; later vectors must match it. The whole batch
// is written in a single transaction, so a failed document leaves the store
// untouched.
func (c *Collection) Upsert(ctx context.Context, docs ...*core.Document) error {
	for _, doc := range docs {
		if err := core.ValidateDocument(doc); err != nil {
			return err
		}
		if len(doc.Vector) == 0 {
			return fmt.Errorf("%w: document %q", store.ErrMissingVector, doc.ID)
		}
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		manifest, err := c.readManifest(tx)
		if err != nil {
			return err
		}

		for _, doc := range docs {
			if manifest.Dimension == 0 {
				manifest.Dimension = len(doc.Vector)
			}
			if len(doc.Vector) != manifest.Dimension {
				return fmt.Errorf("%w: document %q has dimension %d, collection %q expects %d",
					store.ErrDimensionMismatch, doc.ID, len(doc.Vector), c.name, manifest.Dimension)
			}
			key := makeDocumentKey(c.name, doc.ID)
			if err := tx.Set(key, store.MarshalDocument(doc)); err != nil {
				return err
			}
		}

		if err := c.writeManifest(tx, manifest); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Query returns up to k documents ordered by ascending distance from the
// given vector. Every stored entry is scored; ties keep their scan order.
func (c *Collection) Query(ctx context.Context, vector []float32, k int) ([]*core.Match, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", store.ErrInvalidQuery, k)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: query vector is empty", store.ErrInvalidQuery)
	}

	var matches []*core.Match
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		manifest, err := c.readManifest(tx)
		if err != nil {
			return err
		}
		if manifest.Dimension != 0 && len(vector) != manifest.Dimension {
			return fmt.Errorf("%w: query vector has dimension %d, collection %q expects %d",
				store.ErrDimensionMismatch, len(vector), c.name, manifest.Dimension)
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentScanPrefix(c.name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = store.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			matches = append(matches, &core.Match{
				Document: doc,
				Distance: manifest.Metric.Distance(vector, doc.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(matches, func(a, b *core.Match) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Count returns the number of documents stored in the collection. Values
// are not fetched; only keys are walked.
func (c *Collection) Count(ctx context.Context) (int, error) {
	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentScanPrefix(c.name)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Collection) readManifest(tx *badger.Txn) (*store.Manifest, error) {
	item, err := tx.Get(makeManifestKey(c.name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: manifest for collection %q", store.ErrNotFound, c.name)
	}
	if err != nil {
		return nil, err
	}

	var manifest *store.Manifest
	err = item.Value(func(val []byte) error {
		var err error
		manifest, err = store.UnmarshalManifest(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

func (c *Collection) writeManifest(tx *badger.Txn, manifest *store.Manifest) error {
	return tx.Set(makeManifestKey(c.name), store.MarshalManifest(manifest))
}
