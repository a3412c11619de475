package store

import (
	"testing"
	"time"

	"github.com/dossierlab/dossier/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSerialization_RoundTrip(t *testing.T) {
	doc := &core.Document{
		ID:   "Event:7",
		Text: "Event:\nId: 7\nSubject: Climate Summit",
		Metadata: map[string]string{
			core.MetaTable: "Event",
			core.MetaRowID: "7",
		},
		Vector: []float32{0.25, -1.5, 3.75},
	}

	data := MarshalDocument(doc)
	got, err := UnmarshalDocument(data)
	require.NoError(t, err)

	assert.Equal(t, doc, got)
}

func TestDocumentSerialization_EmptyFields(t *testing.T) {
	doc := &core.Document{ID: "Person:1", Text: "Person:\nId: 1"}

	got, err := UnmarshalDocument(MarshalDocument(doc))
	require.NoError(t, err)

	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Text, got.Text)
	assert.Empty(t, got.Metadata)
	assert.Empty(t, got.Vector)
}

func TestDocumentSerialization_Truncated(t *testing.T) {
	doc := &core.Document{ID: "Person:1", Text: "some text", Vector: []float32{1, 2}}
	data := MarshalDocument(doc)

	_, err := UnmarshalDocument(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestManifestSerialization_RoundTrip(t *testing.T) {
	m := &Manifest{
		Name:           "sql_docs",
		Metric:         MetricCosine,
		Dimension:      1024,
		EmbeddingModel: "mxbai-embed-large:latest",
		CreatedAt:      time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}

	got, err := UnmarshalManifest(MarshalManifest(m))
	require.NoError(t, err)

	assert.Equal(t, m, got)
}
