package core

import "fmt"

// RecordKind identifies which relational entity a record came from.
type RecordKind string

const (
	// KindPerson is the Person table.
	KindPerson RecordKind = "Person"
	// KindEvent is the Event table.
	KindEvent RecordKind = "Event"
)

// DocumentID builds the globally unique document identifier for a source row.
// The format is "<Kind>:<row id>", e.g. "Person:12".
func DocumentID(kind RecordKind, rowID int64) string {
	return fmt.Sprintf("%s:%d", kind, rowID)
}

// PersonRecord is a read-only snapshot of a Person row.
// Columns missing from the source scan to zero values; the pipeline never
// probes for field existence dynamically.
type PersonRecord struct {
	ID        int64
	Name      string
	SSN       string // raw sensitive identifier, masked during normalization
	Bio       string
	Education string
	Work      string
}

// EventRecord is a read-only snapshot of an Event row.
// PersonsInvolved is computed by the caller (a group-by aggregation over the
// EventPerson link table, names joined by ", ") and passed in pre-flattened;
// the projection is lossy and one-directional.
type EventRecord struct {
	ID              int64
	Subject         string
	Date            string
	Source          string
	Latitude        string
	Longitude       string
	Address         string
	Description     string
	PersonsInvolved string
}
