package ai

import (
	"encoding/json"
	"fmt"
)

// GatewayError reports an embedding service response whose shape was not
// recognized. It carries the offending raw payload so the caller can decide
// whether to abort the indexing run or skip the document.
type GatewayError struct {
	// Reason describes why the response was rejected.
	Reason string

	// Raw is the unmodified response body.
	Raw json.RawMessage
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("embedding gateway: %s", e.Reason)
}
