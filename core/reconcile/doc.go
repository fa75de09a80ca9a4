// Package reconcile provides the run primitives shared by catalog sync passes.
//
// A sync run walks two independently keyed catalogs (the local ERP and the remote
// e-commerce platform) and applies create, update and link mutations one record at
// a time. This package holds the pieces every pass needs, independent of the
// catalog's concrete types.
//
// # Touched Set
//
// TouchedSet records the local item codes written by the pull pass. The push pass
// of the same run skips them. Each run owns its own set; there is no package
// level default.
//
// # Match Kinds
//
// MatchKind classifies how a remote record maps onto local data:
//   - Unmatched: a new local item is created
//   - MatchedUpdate: an existing item is updated in place
//   - MatchedVariantLink: an existing variant child was linked to a remote variant
//
// # Errors
//
// Three error kinds drive control flow:
//   - TransportError: the remote call failed; the pass aborts and the error is returned
//   - ValidationError: the record is skipped and recorded as a Failure; the pass continues
//   - ErrAmbiguousMatch: logged, and the record is treated as Unmatched
//
// # Run Result
//
// RunResult collects actions, per-pass counts and failures. Finish derives the
// status: failed when the run aborted, partial when records were skipped,
// complete otherwise.
//
// # Guard
//
// Guard wraps singleflight so that concurrent triggers of the same run kind
// (HTTP and CLI, or two HTTP calls) collapse into a single execution.
//
// # Usage Example
//
//	run := reconcile.NewRun("products")
//	touched := reconcile.NewTouchedSet()
//	run.BeginPass("pull")
//	touched.Add("TSHIRT-S")
//	run.Record(reconcile.Action{Type: reconcile.ActionCreateLocal, Key: "TSHIRT-S"})
//	return run.Finish(nil)
package reconcile
