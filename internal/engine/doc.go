// Package engine is the store access layer of Eventra.
//
// All application state is one model.Record persisted as JSON under
// model.StoreKey. The engine is the only code that writes it:
//
//	command -> Update(mutator) -> read record -> mutate copy -> write -> publish
//
// Single writer:
// Update and Write serialize on a mutex. A mutator sees the record as it is
// in the backend at the moment the lock is taken, so concurrent commands in
// one process never lose each other's changes. Separate processes sharing a
// database still race last-write-wins. Sync lets a watcher notice them.
//
// Reads never fail:
// Read returns model.DefaultRecord when the key is absent, the backend errors
// or the stored JSON is unreadable. The failure is logged at warn level.
//
// Change notification:
// Every successful write publishes one notify.Change carrying the new
// revision, the collections that differ and the full record. Publishing
// happens while the write lock is held, so subscribers see revisions in
// order. A mutator error aborts the transaction: nothing is written and
// nothing is published.
//
// Domain commands (AddEvent, RegisterForEvent, ...) are thin wrappers around
// Update that also patch the matching dashboard stat. Commands naming an id
// that does not exist leave the collections untouched but still write.
package engine
