package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dossierlab/dossier/ai"
	"github.com/dossierlab/dossier/core"
)

const (
	embeddingsPath = "/api/embeddings"

	defaultHTTPTimeout = 60 * time.Second
)

// Embedder implements ai.Embedder against the native Ollama embeddings
// endpoint. The endpoint's response shape varies by service version, so
// decoding goes through normalizeEmbeddings.
type Embedder struct {
	host      string
	model     string
	batchSize int
	client    *http.Client
	logger    *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithHTTPClient replaces the default HTTP client. Used by tests and by
// callers that need a different timeout.
func WithHTTPClient(client *http.Client) EmbedderOption {
	return func(e *Embedder) {
		if client != nil {
			e.client = client
		}
	}
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config, opts ...EmbedderOption) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Embedder{
		host:      config.Host,
		model:     config.EmbeddingModel,
		batchSize: config.EmbedBatchSize,
		client:    &http.Client{Timeout: defaultHTTPTimeout},
		logger:    slog.Default().With("component", "ollama-embedder"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config, opts ...EmbedderOption) (ai.Embedder, error) {
	return newEmbedder(config, opts...)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings.
// Requests are chunked by the configured batch size; chunking never changes
// the result, only how many round trips are made.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings", "count", len(texts), "batchSize", e.batchSize)

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))

		chunk := make([]string, end-start)
		for i, text := range texts[start:end] {
			chunk[i] = core.FlattenText(text)
		}

		batch, err := e.embedChunk(ctx, chunk)
		if err != nil {
			e.logger.Error("failed to generate embeddings", "count", len(chunk), "err", err)
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// embedChunk issues one request for a chunk of texts and normalizes the
// response into one vector per text.
func (e *Embedder) embedChunk(ctx context.Context, chunk []string) ([][]float32, error) {
	body := map[string]any{"model": e.model}
	if len(chunk) == 1 {
		body["prompt"] = chunk[0]
	} else {
		body["prompt"] = chunk
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.host+embeddingsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embedding service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading embedding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	vectors, err := normalizeEmbeddings(raw)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunk) {
		return nil, &ai.GatewayError{
			Reason: fmt.Sprintf("expected %d vectors, got %d", len(chunk), len(vectors)),
			Raw:    raw,
		}
	}
	return vectors, nil
}
