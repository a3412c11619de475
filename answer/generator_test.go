package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossierlab/dossier/ai/mock"
	"github.com/dossierlab/dossier/core"
)

func sampleMatches() []*core.Match {
	return []*core.Match{
		{
			Document: &core.Document{
				ID:       "Event:1",
				Text:     "Event:\nId: 1\nSubject: Climate Summit",
				Metadata: map[string]string{core.MetaTable: "Event", core.MetaRowID: "1"},
			},
			Distance: 0.1,
		},
		{
			Document: &core.Document{
				ID:       "Person:2",
				Text:     "Person:\nId: 2\nName: Jane Roe",
				Metadata: map[string]string{core.MetaTable: "Person", core.MetaRowID: "2"},
			},
			Distance: 0.4,
		},
	}
}

func TestBuildContext(t *testing.T) {
	got := BuildContext(sampleMatches())

	want := "--- CONTEXT 1 (table=Event, row_id=1) ---\n" +
		"Event:\nId: 1\nSubject: Climate Summit" +
		"\n\n" +
		"--- CONTEXT 2 (table=Person, row_id=2) ---\n" +
		"Person:\nId: 2\nName: Jane Roe"
	assert.Equal(t, want, got)
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Empty(t, BuildContext(nil))
}

func TestGeneratePromptContents(t *testing.T) {
	completer := mock.NewMockCompleter()
	var gotSystem, gotUser string
	completer.ChatFunc = func(ctx context.Context, system, user string) (string, error) {
		gotSystem, gotUser = system, user
		return "the answer", nil
	}

	g, err := NewGenerator(completer)
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "What happened in 2023?", sampleMatches())
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)

	assert.Contains(t, gotSystem, "ONLY use the information provided in the CONTEXT blocks")
	assert.Contains(t, gotUser, "--- CONTEXT 1 (table=Event, row_id=1) ---")
	assert.Contains(t, gotUser, "QUESTION:\nWhat happened in 2023?")
	assert.Contains(t, gotUser, "INSTRUCTIONS:")

	// Context precedes the question which precedes the instructions.
	ctxIdx := strings.Index(gotUser, "CONTEXT:")
	qIdx := strings.Index(gotUser, "QUESTION:")
	instIdx := strings.Index(gotUser, "INSTRUCTIONS:")
	assert.True(t, ctxIdx < qIdx && qIdx < instIdx)
}

func TestGenerateFallsBackToCompletion(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.ChatFunc = func(ctx context.Context, system, user string) (string, error) {
		return "", errors.New("chat endpoint unsupported")
	}
	var gotPrompt string
	completer.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "fallback answer", nil
	}

	g, err := NewGenerator(completer)
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "question", sampleMatches())
	require.NoError(t, err)
	assert.Equal(t, "fallback answer", text)
	assert.Equal(t, 1, completer.ChatCalls())
	assert.Equal(t, 1, completer.CompleteCalls())

	// The fallback prompt is the system prompt and user prompt concatenated.
	assert.True(t, strings.HasPrefix(gotPrompt, "You are a helpful assistant"))
	assert.Contains(t, gotPrompt, "QUESTION:\nquestion")
}

func TestGenerateBothTransportsFail(t *testing.T) {
	completer := mock.NewMockCompleter()
	chatErr := errors.New("chat down")
	genErr := errors.New("generate down")
	completer.ChatFunc = func(ctx context.Context, system, user string) (string, error) {
		return "", chatErr
	}
	completer.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", genErr
	}

	g, err := NewGenerator(completer)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "question", sampleMatches())
	assert.ErrorIs(t, err, chatErr)
	assert.ErrorIs(t, err, genErr)
}

func TestGenerateEmptyContext(t *testing.T) {
	g, err := NewGenerator(mock.NewMockCompleter())
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "question", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestNewGeneratorValidation(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.ErrorIs(t, err, ErrCompleterRequired)
}
