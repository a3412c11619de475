package ollama

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel implements llms.Model with canned responses.
type fakeModel struct {
	response *llms.ContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return f.response, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return extractContent(f.response), nil
}

func newFakeGenerator(model llms.Model) *Generator {
	return &Generator{client: model, logger: slog.Default()}
}

func TestChat_ReturnsChoiceContent(t *testing.T) {
	gen := newFakeGenerator(&fakeModel{
		response: &llms.ContentResponse{
			Choices: []*llms.ContentChoice{{Content: "grounded answer"}},
		},
	})

	answer, err := gen.Chat(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", answer)
}

func TestChat_SkipsEmptyChoices(t *testing.T) {
	gen := newFakeGenerator(&fakeModel{
		response: &llms.ContentResponse{
			Choices: []*llms.ContentChoice{{Content: ""}, {Content: "second"}},
		},
	})

	answer, err := gen.Chat(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "second", answer)
}

func TestChat_SerializesUnusableResponse(t *testing.T) {
	gen := newFakeGenerator(&fakeModel{
		response: &llms.ContentResponse{Choices: nil},
	})

	answer, err := gen.Chat(context.Background(), "system", "user")
	require.NoError(t, err)

	// Last-resort fallback: the raw response serialized as JSON.
	assert.NotEmpty(t, answer)
	assert.Contains(t, answer, "Choices")
}

func TestChat_PropagatesTransportError(t *testing.T) {
	transportErr := errors.New("connection refused")
	gen := newFakeGenerator(&fakeModel{err: transportErr})

	_, err := gen.Chat(context.Background(), "system", "user")
	assert.ErrorIs(t, err, transportErr)
}

func TestExtractContent_NilResponse(t *testing.T) {
	assert.NotPanics(t, func() {
		extractContent(nil)
	})
}
