// Package ai defines the boundary to the embedding and chat services.
//
// The pipeline only ever sees the Embedder and ChatCompleter interfaces.
// Response-shape differences between service versions are normalized behind
// this boundary (see the ollama subpackage); the rest of the system works
// with plain vectors and strings.
package ai
