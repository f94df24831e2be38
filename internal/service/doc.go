// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The central use case is UserDirectory, which owns the user lifecycle:
//
// 1. Creation:
//   - An advisory pre-check rejects emails already held by a live user
//   - The store's uniqueness constraint is the final authority under concurrency
//
// 2. Lookup:
//   - Only live users are visible; retired users are unreachable
//   - Malformed IDs are rejected before the store is consulted
//
// 3. Mutation and retirement:
//   - Partial updates touch only the fields present in the patch
//   - Removal sets deleted_at; nothing is ever hard-deleted
//
// 4. Error Handling:
//   - Store write failures are classified into ErrValidationFailed, ErrConflict
//     or ErrInternal, each carried by a *Error with a client-safe message
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
