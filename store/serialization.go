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

package store

import (
	"fmt"
	"time"

	"github.com/dossierlab/dossier/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the persisted types. The entry layout is
// small and stable, so the serializers are composed directly from mus-go
// primitives instead of generated code.

var (
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

// DocumentMUS serializes core.Document index entries.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (documentMUS) Marshal(doc core.Document, bs []byte) (n int) {
	n = ord.String.Marshal(doc.ID, bs)
	n += ord.String.Marshal(doc.Text, bs[n:])
	n += metadataMUS.Marshal(doc.Metadata, bs[n:])
	n += vectorMUS.Marshal(doc.Vector, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (doc core.Document, n int, err error) {
	var n1 int
	doc.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	doc.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentMUS) Size(doc core.Document) int {
	return ord.String.Size(doc.ID) +
		ord.String.Size(doc.Text) +
		metadataMUS.Size(doc.Metadata) +
		vectorMUS.Size(doc.Vector)
}

// ManifestMUS serializes collection manifests.
var ManifestMUS = manifestMUS{}

type manifestMUS struct{}

func (manifestMUS) Marshal(m Manifest, bs []byte) (n int) {
	n = ord.String.Marshal(m.Name, bs)
	n += ord.String.Marshal(string(m.Metric), bs[n:])
	n += varint.Int.Marshal(m.Dimension, bs[n:])
	n += ord.String.Marshal(m.EmbeddingModel, bs[n:])
	n += varint.Int64.Marshal(m.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (manifestMUS) Unmarshal(bs []byte) (m Manifest, n int, err error) {
	var n1 int
	m.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var metric string
	metric, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.Metric = Metric(metric)
	m.Dimension, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.EmbeddingModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.CreatedAt = time.UnixMicro(micros).UTC()
	return
}

func (manifestMUS) Size(m Manifest) int {
	return ord.String.Size(m.Name) +
		ord.String.Size(string(m.Metric)) +
		varint.Int.Size(m.Dimension) +
		ord.String.Size(m.EmbeddingModel) +
		varint.Int64.Size(m.CreatedAt.UnixMicro())
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, DocumentMUS.Size(*doc))
	DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(m *Manifest) []byte {
	buf := make([]byte, ManifestMUS.Size(*m))
	ManifestMUS.Marshal(*m, buf)
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	m, _, err := ManifestMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &m, nil
}
