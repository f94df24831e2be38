// Package domain contains the core entities of the user directory:
// the User record, its identifier, and the value types used to create
// and partially update it. It is independent of any storage or delivery
// mechanism.
package domain
