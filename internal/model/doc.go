// Package model holds the typed shape of the Eventra store record.
//
// The persisted record is one JSON object under StoreKey. This package owns
// its Go types, the schema version, the in-memory migration applied on every
// load, and a canonical JSON encoding used wherever byte-stable output matters
// (ticket payloads, golden snapshots, change detection).
//
// model imports nothing internal; every other package builds on it.
package model
