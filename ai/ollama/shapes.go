package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dossierlab/dossier/ai"
)

// The embeddings endpoint has returned three shapes across service versions:
//
//	{"embedding": [0.1, ...]}                  single vector object
//	[{"embedding": [0.1, ...]}, ...]           batch of vector objects
//	[[0.1, ...], [0.2, ...]]                   raw list of vectors
//
// normalizeEmbeddings folds all three into one vector per input text. Any
// other payload is a *ai.GatewayError carrying the raw response.

type vectorObject struct {
	Embedding []float32 `json:"embedding"`
}

func normalizeEmbeddings(raw []byte) ([][]float32, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ai.GatewayError{Reason: "empty response body", Raw: raw}
	}

	switch trimmed[0] {
	case '{':
		var single vectorObject
		if err := json.Unmarshal(trimmed, &single); err == nil && len(single.Embedding) > 0 {
			return [][]float32{single.Embedding}, nil
		}
		return nil, &ai.GatewayError{Reason: "object response has no embedding field", Raw: raw}

	case '[':
		var batch []vectorObject
		if err := json.Unmarshal(trimmed, &batch); err == nil {
			vectors := make([][]float32, 0, len(batch))
			ok := true
			for _, item := range batch {
				if len(item.Embedding) == 0 {
					ok = false
					break
				}
				vectors = append(vectors, item.Embedding)
			}
			if ok && len(vectors) > 0 {
				return vectors, nil
			}
		}

		var rawList [][]float32
		if err := json.Unmarshal(trimmed, &rawList); err == nil && len(rawList) > 0 {
			return rawList, nil
		}
		return nil, &ai.GatewayError{Reason: "array response is neither vector objects nor raw vectors", Raw: raw}

	default:
		return nil, &ai.GatewayError{
			Reason: fmt.Sprintf("unrecognized response shape starting with %q", trimmed[0]),
			Raw:    raw,
		}
	}
}
