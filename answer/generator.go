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

package answer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dossierlab/dossier/ai"
	"github.com/dossierlab/dossier/core"
)

// Generator produces grounded answers from retrieved context. It tries the
// chat interface first and falls back to a flat completion when the chat
// call fails, so models exposing only one transport still answer.
type Generator struct {
	completer ai.ChatCompleter
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a new answer generator.
func NewGenerator(completer ai.ChatCompleter, opts ...Option) (*Generator, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	g := &Generator{
		completer: completer,
		logger:    slog.Default().With("component", "answer"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate answers the question using only the retrieved matches. An empty
// match slice still produces a call; the instructions tell the model to say
// it lacks information.
func (g *Generator) Generate(ctx context.Context, question string, matches []*core.Match) (string, error) {
	userPrompt := buildUserPrompt(BuildContext(matches), question)

	text, chatErr := g.completer.Chat(ctx, systemPrompt, userPrompt)
	if chatErr == nil {
		return text, nil
	}
	g.logger.Warn("chat call failed, falling back to completion", "err", chatErr)

	text, genErr := g.completer.Complete(ctx, systemPrompt+"\n\n"+userPrompt)
	if genErr != nil {
		return "", fmt.Errorf("chat failed (%w), completion fallback failed: %w", chatErr, genErr)
	}
	return text, nil
}
