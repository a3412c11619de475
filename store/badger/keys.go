package badger

import "fmt"

// Key prefixes for different data types
const (
	manifestPrefix = "colman"
	documentPrefix = "coldoc"
)

// makeManifestKey generates the key holding a collection's manifest.
func makeManifestKey(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s", manifestPrefix, collection))
}

// makeDocumentKey generates the key for a document within a collection.
func makeDocumentKey(collection, docID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentPrefix, collection, docID))
}

// makeDocumentScanPrefix generates the prefix covering every document key
// of a collection. The trailing separator keeps collections whose names
// share a prefix from scanning into each other.
func makeDocumentScanPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentPrefix, collection))
}
