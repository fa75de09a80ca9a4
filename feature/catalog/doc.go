// Package catalog exposes the ERP catalog sync over HTTP.
//
// Routes (all POST, under /catalog): sync, pull, push, stock and stock/all.
// Every route returns the run report of the executed sync. Concurrent requests
// for the same kind of run share one execution.
package catalog
