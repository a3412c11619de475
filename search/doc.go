// Package search retrieves stored documents by semantic similarity.
// A retrieval embeds the question once and ranks every stored document by
// the collection's distance metric.
package search
