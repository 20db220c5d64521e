// Package store is the gorm-backed catalog repository.
//
// It loads options and variants in the shape the reconcile engine expects and
// applies commits: each created variant is inserted in its own transaction
// together with its option value links and prices. Option values that only
// exist in the editor are resolved by option title and value, and created when
// missing. Prices are connected to currencies by lower-cased code and to regions
// by code. Deleting a variant is a soft delete.
package store
