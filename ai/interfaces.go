package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. All vectors handed to one document store collection must come from
// the same model, otherwise distances are not comparable.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// The returned slice has one vector per input text, in input order,
	// regardless of how the implementation chunks its requests.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatCompleter produces model completions over two transport styles.
// Chat is the conversational interface; Complete is the raw-completion
// interface used as the fallback when the chat call fails.
type ChatCompleter interface {
	// Chat sends a system instruction and a user message and returns the
	// model's answer text. Implementations extract the text defensively and
	// fall back to serializing the raw response rather than failing on an
	// unrecognized shape.
	Chat(ctx context.Context, system, user string) (string, error)

	// Complete sends a single flat prompt and returns the completion text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Completer returns the chat/completion service.
	Completer() ChatCompleter

	// Close releases resources held by the provider and its services.
	Close() error
}
