package ollama

import (
	"errors"
	"testing"

	"github.com/dossierlab/dossier/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmbeddings_SingleObject(t *testing.T) {
	vectors, err := normalizeEmbeddings([]byte(`{"embedding": [0.1, 0.2, 0.3]}`))
	require.NoError(t, err)

	require.Len(t, vectors, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vectors[0])
}

func TestNormalizeEmbeddings_ObjectBatch(t *testing.T) {
	raw := `[{"embedding": [1, 2]}, {"embedding": [3, 4]}]`

	vectors, err := normalizeEmbeddings([]byte(raw))
	require.NoError(t, err)

	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 2}, vectors[0])
	assert.Equal(t, []float32{3, 4}, vectors[1])
}

func TestNormalizeEmbeddings_RawVectorList(t *testing.T) {
	vectors, err := normalizeEmbeddings([]byte(`[[1, 2], [3, 4], [5, 6]]`))
	require.NoError(t, err)

	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{5, 6}, vectors[2])
}

func TestNormalizeEmbeddings_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "object without embedding", raw: `{"status": "ok"}`},
		{name: "array of strings", raw: `["a", "b"]`},
		{name: "bare number", raw: `42`},
		{name: "empty body", raw: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeEmbeddings([]byte(tt.raw))
			require.Error(t, err)

			var gwErr *ai.GatewayError
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, tt.raw, string(gwErr.Raw))
		})
	}
}
