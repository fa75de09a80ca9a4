// Package store persists the local catalog with GORM.
//
// Store implements the sync's Repository interface on MySQL in production and
// SQLite in tests. Every lookup maps gorm.ErrRecordNotFound onto
// reconcile.ErrNotFound. Item and attribute-definition writes replace their child
// rows (attributes, values) inside a transaction, and Atomic exposes a
// transaction-scoped Store so the sync commits one product at a time.
package store
