package core

// Metadata keys present on every canonical document.
const (
	MetaTable = "table"
	MetaRowID = "row_id"
)

// Document is the canonical text form of a source record.
// It is created during indexing, is immutable, and is re-created (replacing
// the prior entry, never duplicating it) when the same source row is indexed
// again. Text never contains an unmasked sensitive identifier.
type Document struct {
	ID       string            // "<Kind>:<row id>", globally unique
	Text     string            // deterministic serialization of all fields
	Metadata map[string]string // at least MetaTable and MetaRowID
	Vector   []float32         // embedding, populated by the indexer
}

// Match is one retrieval result: a stored document and its distance from the
// query vector. Slices of matches are ordered by ascending distance.
type Match struct {
	Document *Document
	Distance float32
}
