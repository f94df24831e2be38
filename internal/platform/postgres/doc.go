// Package postgres provides the PostgreSQL implementation of store.UserStore.
// It handles query execution, mapping between domain.User and the users table,
// and translation of PostgreSQL error codes into store.WriteError reasons.
//
// The schema lives in the embedded goose migrations (see Migrations). The
// partial unique index users_email_live_key is the storage-level authority
// for email uniqueness among live users.
package postgres
