// Package store defines the persistent document store: named collections of
// embedded documents with nearest-neighbor retrieval. The interfaces and the
// persisted wire format live here; backends live in subpackages.
package store
