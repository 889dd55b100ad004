// Package store provides the persistent key-value table behind Eventra.
//
// The whole application state is a handful of JSON documents, each stored
// under one string key: the store record, the signed-up accounts list and the
// current-session marker. Two backends implement the same contract:
//
//   - Store: SQLite (default). Every Put bumps a per-key revision and appends
//     the written value to kv_history in the same transaction.
//   - RedisKV: Redis. Revision and a capped history live in companion keys.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - single open connection: SQLite has one writer
//
// Values are opaque to this package. Decoding and migration belong to
// internal/model and internal/engine.
package store
