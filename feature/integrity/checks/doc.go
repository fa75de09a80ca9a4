// Package checks holds the individual integrity checks: the catalog schema
// against its GORM models, and the attachment buckets.
package checks
