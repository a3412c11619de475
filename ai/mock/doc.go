// Package mock provides test double implementations of AI service interfaces.
//
// The mocks allow tests to run without external AI services and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	vector, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("service unreachable")
//	}
//
// # Default Behavior
//
//   - MockEmbedder: returns deterministic unit vectors hashed from the text
//   - MockCompleter: returns fixed canned answers
//   - MockProvider: aggregates both
package mock
