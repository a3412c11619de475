package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	assert.Equal(t, DefaultChatModel, cfg.ChatModel)
	assert.Equal(t, DefaultEmbedBatchSize, cfg.EmbedBatchSize)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://ollama:11434/"),
		WithEmbeddingModel("nomic-embed-text"),
		WithChatModel("llama3.1"),
		WithEmbedBatchSize(8),
	)
	require.NoError(t, cfg.Validate())

	// Validate normalizes trailing slashes away.
	assert.Equal(t, "http://ollama:11434", cfg.Host)
	assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
	assert.Equal(t, "llama3.1", cfg.ChatModel)
	assert.Equal(t, 8, cfg.EmbedBatchSize)
}

func TestConfigValidateMissingFields(t *testing.T) {
	cfg := NewConfig(WithHost(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithEmbeddingModel(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithChatModel(""))
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateFixesBatchSize(t *testing.T) {
	cfg := NewConfig(WithEmbedBatchSize(-3))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.EmbedBatchSize)
}
