// Copyright 2026 Dossier Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"strings"
)

// Defaults for a local Ollama install.
const (
	DefaultHost           = "http://localhost:11434"
	DefaultEmbeddingModel = "mxbai-embed-large:latest"
	DefaultChatModel      = "llama3.2:latest"
	DefaultEmbedBatchSize = 1
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the Ollama-compatible service.
	// Example: "http://localhost:11434"
	Host string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Example: "mxbai-embed-large:latest"
	EmbeddingModel string

	// ChatModel is the model identifier used for answer generation.
	// Example: "llama3.2:latest"
	ChatModel string

	// EmbedBatchSize is how many texts are sent per embedding request.
	// Purely a performance knob: results are identical for any value.
	// Default: 1
	EmbedBatchSize int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatModel sets the chat model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithEmbedBatchSize sets the embedding request batch size.
func WithEmbedBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.EmbedBatchSize = size
	}
}

// DefaultConfig returns a Config with defaults for a local Ollama install.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		EmbeddingModel: DefaultEmbeddingModel,
		ChatModel:      DefaultChatModel,
		EmbedBatchSize: DefaultEmbedBatchSize,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("nomic-embed-text"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes on the host are removed so endpoint paths can be appended.
func (c *Config) Normalize() {
	c.Host = strings.TrimRight(c.Host, "/")
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.EmbedBatchSize < 1 {
		c.EmbedBatchSize = 1
	}
	return nil
}
