// Package integrity provides system health checks for the catalog sync.
//
// # Checks Provided
//
//   - Schema: Validates that the connected database holds every catalog table and column
//     (and every explicitly typed column's type) declared by the catalog models.
//   - Storage: Checks that the private and public attachment buckets exist.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
