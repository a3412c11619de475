// Package sqlite implements the record source on a SQLite database using
// the modernc.org/sqlite driver. The schema mirrors the relational layout
// the pipeline indexes: Person, Event, and the EventPerson link table.
package sqlite
