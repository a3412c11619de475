package store

import "time"

// Manifest records the fixed facts about a collection. It is written when
// the collection is first created and re-read on every open; the metric and
// embedding model may never change afterwards, and the dimension is pinned
// by the first upserted vector.
type Manifest struct {
	Name           string
	Metric         Metric
	Dimension      int    // 0 until the first upsert
	EmbeddingModel string // optional; "" when the caller did not declare one
	CreatedAt      time.Time
}
