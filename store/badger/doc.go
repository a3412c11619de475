// Package badger provides the BadgerDB-backed implementation of the
// document store. Collections live side by side in one database, each with
// a manifest key and a key per document. Similarity queries scan the
// collection exhaustively and rank by the manifest's metric.
package badger
