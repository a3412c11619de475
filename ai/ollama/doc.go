// Package ollama provides ai.Embedder and ai.ChatCompleter implementations
// for a local or remote Ollama service.
//
// The embedder speaks the native embeddings endpoint directly because its
// response shape differs across service versions; all recognized shapes are
// normalized into one vector per input text at this boundary. Chat and
// completion calls go through langchaingo.
package ollama
