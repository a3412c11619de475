package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/dossierlab/dossier/core"
	"github.com/dossierlab/dossier/store"
)

func TestCollectionBasics(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs")
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	if collection.Name() != "docs" {
		t.Fatalf("Expected name 'docs', got '%s'", collection.Name())
	}

	count, err := collection.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected empty collection, got %d entries", count)
	}

	err = collection.Upsert(ctx, &core.Document{
		ID:       "Person:1",
		Text:     "Person: Id: 1 Name: Jane",
		Metadata: map[string]string{core.MetaTable: "persons", core.MetaRowID: "1"},
		Vector:   []float32{1, 0, 0},
	})
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	count, err = collection.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 entry, got %d", count)
	}

	matches, err := collection.Query(ctx, []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Document.ID != "Person:1" {
		t.Fatalf("Expected 'Person:1', got '%s'", matches[0].Document.ID)
	}
	if matches[0].Document.Metadata[core.MetaTable] != "persons" {
		t.Fatalf("Expected metadata table 'persons', got '%s'", matches[0].Document.Metadata[core.MetaTable])
	}
}

func TestOpenCollectionEmptyName(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	_, err = OpenCollection(backend, "")
	if !errors.Is(err, store.ErrEmptyCollectionName) {
		t.Fatalf("Expected ErrEmptyCollectionName, got %v", err)
	}
}

func TestOpenCollectionIdempotent(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs", WithMetric(store.MetricCosine))
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	err = collection.Upsert(ctx, &core.Document{ID: "a", Text: "alpha", Vector: []float32{1, 0}})
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	// Reopening with matching options must see the same entries.
	reopened, err := OpenCollection(backend, "docs", WithMetric(store.MetricCosine))
	if err != nil {
		t.Fatalf("Failed to reopen collection: %v", err)
	}
	count, err := reopened.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 entry after reopen, got %d", count)
	}
}

func TestOpenCollectionMetricMismatch(t *testing.T) {
	_, backend, err := NewMemoryCollection("docs", WithMetric(store.MetricCosine))
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	_, err = OpenCollection(backend, "docs", WithMetric(store.MetricEuclidean))
	if !errors.Is(err, store.ErrMetricMismatch) {
		t.Fatalf("Expected ErrMetricMismatch, got %v", err)
	}
}

func TestOpenCollectionModelMismatch(t *testing.T) {
	_, backend, err := NewMemoryCollection("docs", WithEmbeddingModel("mxbai-embed-large:latest"))
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	_, err = OpenCollection(backend, "docs", WithEmbeddingModel("nomic-embed-text"))
	if !errors.Is(err, store.ErrModelMismatch) {
		t.Fatalf("Expected ErrModelMismatch, got %v", err)
	}

	// Omitting the model on reopen is always allowed.
	if _, err = OpenCollection(backend, "docs"); err != nil {
		t.Fatalf("Failed to reopen without model: %v", err)
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs")
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	err = collection.Upsert(ctx, &core.Document{ID: "Event:7", Text: "old text", Vector: []float32{1, 0, 0}})
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	err = collection.Upsert(ctx, &core.Document{ID: "Event:7", Text: "new text", Vector: []float32{0, 1, 0}})
	if err != nil {
		t.Fatalf("Failed to re-upsert: %v", err)
	}

	count, err := collection.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 entry after replacement, got %d", count)
	}

	matches, err := collection.Query(ctx, []float32{0, 1, 0}, 1)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if matches[0].Document.Text != "new text" {
		t.Fatalf("Expected replaced text, got '%s'", matches[0].Document.Text)
	}
}

func TestUpsertValidation(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs")
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	err = collection.Upsert(ctx, &core.Document{ID: "", Text: "text", Vector: []float32{1}})
	if !errors.Is(err, core.ErrEmptyDocumentID) {
		t.Fatalf("Expected ErrEmptyDocumentID, got %v", err)
	}

	err = collection.Upsert(ctx, &core.Document{ID: "a", Text: "text"})
	if !errors.Is(err, store.ErrMissingVector) {
		t.Fatalf("Expected ErrMissingVector, got %v", err)
	}
}

func TestDimensionPinning(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs")
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	err = collection.Upsert(ctx, &core.Document{ID: "a", Text: "alpha", Vector: []float32{1, 0, 0}})
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	// A vector of a different dimension is rejected and the batch rolls back.
	err = collection.Upsert(ctx,
		&core.Document{ID: "b", Text: "beta", Vector: []float32{0, 1, 0}},
		&core.Document{ID: "c", Text: "gamma", Vector: []float32{0, 1}},
	)
	if !errors.Is(err, store.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}

	count, err := collection.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected rejected batch to leave 1 entry, got %d", count)
	}

	// Query vectors are checked against the pinned dimension too.
	_, err = collection.Query(ctx, []float32{1, 0}, 3)
	if !errors.Is(err, store.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch on query, got %v", err)
	}
}

func TestQueryOrdering(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs")
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	err = collection.Upsert(ctx,
		&core.Document{ID: "far", Text: "far", Vector: []float32{0, 1, 0}},
		&core.Document{ID: "near", Text: "near", Vector: []float32{1, 0, 0}},
		&core.Document{ID: "mid", Text: "mid", Vector: []float32{1, 1, 0}},
	)
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	matches, err := collection.Query(ctx, []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}

	expected := []string{"near", "mid", "far"}
	for i, id := range expected {
		if matches[i].Document.ID != id {
			t.Fatalf("Expected '%s' at rank %d, got '%s'", id, i, matches[i].Document.ID)
		}
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Fatalf("Distances not ascending at rank %d", i)
		}
	}
}

func TestQueryTruncatesToK(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs")
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	err = collection.Upsert(ctx,
		&core.Document{ID: "a", Text: "alpha", Vector: []float32{1, 0}},
		&core.Document{ID: "b", Text: "beta", Vector: []float32{0, 1}},
		&core.Document{ID: "c", Text: "gamma", Vector: []float32{1, 1}},
	)
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	matches, err := collection.Query(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}

	// k beyond the entry count returns everything.
	matches, err = collection.Query(ctx, []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
}

func TestQueryValidation(t *testing.T) {
	collection, backend, err := NewMemoryCollection("docs")
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	_, err = collection.Query(ctx, []float32{1, 0}, 0)
	if !errors.Is(err, store.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for k=0, got %v", err)
	}

	_, err = collection.Query(ctx, nil, 3)
	if !errors.Is(err, store.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for empty vector, got %v", err)
	}
}

func TestCollectionIsolation(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	// Names sharing a prefix must not scan into each other.
	docs, err := OpenCollection(backend, "docs")
	if err != nil {
		t.Fatalf("Failed to open collection: %v", err)
	}
	docsArchive, err := OpenCollection(backend, "docs_archive")
	if err != nil {
		t.Fatalf("Failed to open collection: %v", err)
	}

	err = docs.Upsert(ctx, &core.Document{ID: "a", Text: "alpha", Vector: []float32{1, 0}})
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	err = docsArchive.Upsert(ctx,
		&core.Document{ID: "b", Text: "beta", Vector: []float32{0, 1}},
		&core.Document{ID: "c", Text: "gamma", Vector: []float32{1, 1}},
	)
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	count, err := docs.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 entry in 'docs', got %d", count)
	}

	count, err = docsArchive.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 entries in 'docs_archive', got %d", count)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}

	collection, err := OpenCollection(backend, "docs", WithEmbeddingModel("mxbai-embed-large:latest"))
	if err != nil {
		backend.Close()
		t.Fatalf("Failed to open collection: %v", err)
	}

	err = collection.Upsert(ctx,
		&core.Document{ID: "Person:1", Text: "Jane", Vector: []float32{1, 0, 0}},
		&core.Document{ID: "Event:2", Text: "Summit", Vector: []float32{0, 1, 0}},
	)
	if err != nil {
		backend.Close()
		t.Fatalf("Failed to upsert: %v", err)
	}

	if err := backend.Close(); err != nil {
		t.Fatalf("Failed to close backend: %v", err)
	}

	backend, err = OpenBackend(dir, false)
	if err != nil {
		t.Fatalf("Failed to reopen backend: %v", err)
	}
	defer backend.Close()

	collection, err = OpenCollection(backend, "docs", WithEmbeddingModel("mxbai-embed-large:latest"))
	if err != nil {
		t.Fatalf("Failed to reopen collection: %v", err)
	}

	count, err := collection.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 entries after reopen, got %d", count)
	}

	manifest, err := collection.Manifest()
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}
	if manifest.Dimension != 3 {
		t.Fatalf("Expected pinned dimension 3, got %d", manifest.Dimension)
	}
	if manifest.EmbeddingModel != "mxbai-embed-large:latest" {
		t.Fatalf("Expected model to persist, got '%s'", manifest.EmbeddingModel)
	}

	matches, err := collection.Query(ctx, []float32{0, 1, 0}, 1)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if matches[0].Document.ID != "Event:2" {
		t.Fatalf("Expected 'Event:2', got '%s'", matches[0].Document.ID)
	}
}
