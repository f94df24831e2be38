// Package sqlite provides a store.UserStore backed by SQLite through the
// pure-Go modernc.org/sqlite driver, for single-node deployments and tests.
//
// The schema mirrors the PostgreSQL one, including the partial unique index
// on live emails; timestamps are stored as Unix milliseconds.
package sqlite
