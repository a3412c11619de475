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

package ollama

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dossierlab/dossier/ai"
	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"
)

// Generator implements ai.ChatCompleter using the Ollama chat and completion
// APIs via langchaingo.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.ChatCompleter = (*Generator)(nil)

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := lcollama.New(
		lcollama.WithServerURL(config.Host),
		lcollama.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "ollama-generator"),
	}, nil
}

// NewGenerator creates a new chat completer using the provided configuration.
//
// Returns ai.ChatCompleter interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.ChatCompleter, error) {
	return newGenerator(config)
}

// Chat sends a system instruction and a user message through the
// conversational interface and returns the answer text.
func (g *Generator) Chat(ctx context.Context, system, user string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(user)},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		g.logger.Error("chat call failed", "err", err)
		return "", err
	}

	return extractContent(response), nil
}

// Complete sends a single flat prompt through the raw-completion interface.
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, g.client, prompt, llms.WithTemperature(0.0))
	if err != nil {
		g.logger.Error("completion call failed", "err", err)
		return "", err
	}
	return text, nil
}

// extractContent pulls the answer text out of a content response. The first
// choice with non-empty content wins; a response with no usable choice is
// serialized whole as the last-resort answer, so extraction never fails.
func extractContent(response *llms.ContentResponse) string {
	if response != nil {
		for _, choice := range response.Choices {
			if choice != nil && choice.Content != "" {
				return choice.Content
			}
		}
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return ""
	}
	return string(raw)
}
