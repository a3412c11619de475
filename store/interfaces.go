package store

import (
	"context"

	"github.com/dossierlab/dossier/core"
)

// Collection is a named, persistent set of (id, text, metadata, embedding)
// entries supporting nearest-neighbor retrieval. One entry exists per
// document ID at any time; the distance metric is fixed when the collection
// is first created.
//
// Implementations must support write-then-read across process restarts.
// Concurrent upserts and queries carry only whatever guarantees the backing
// engine provides; the pipeline itself never interleaves them.
type Collection interface {
	// Upsert inserts new documents and replaces documents whose IDs already
	// exist. After the call no duplicate IDs persist. Every document must
	// carry an embedding whose dimension matches the collection's.
	Upsert(ctx context.Context, docs ...*core.Document) error

	// Query returns up to k entries ordered by ascending distance from the
	// given vector under the collection's metric.
	Query(ctx context.Context, vector []float32, k int) ([]*core.Match, error)

	// Count returns the number of entries currently stored.
	Count(ctx context.Context) (int, error)

	// Name returns the collection name.
	Name() string
}
