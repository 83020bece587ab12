// Package reconcile compares two keyed sets of JSON values and plans the
// mutations that align one with the other.
//
// The two sides are called expected and actual. In backup verification the
// snapshot is expected and the live namespace is actual.
//
// # Architecture
//
// 1. Engine: Reconcile loads both indices concurrently, Diff builds the union of
// keys and flags presence and value mismatches. Values are compared as decoded
// JSON, so key order and whitespace do not count as differences.
//
// 2. Plan: BuildPlan turns a diff into put/delete actions and ApplyPlan runs them
// through a Mutator once the caller has confirmed.
//
// # Usage Example
//
//	report, err := reconcile.Reconcile(ctx, snapshotLoader, liveLoader)
//	if err != nil {
//	    return err
//	}
//	if !report.Summary.Clean() {
//	    plan := reconcile.BuildPlan(snapshotIndex, liveIndex, reconcile.Options{Prune: true, Confirmed: true})
//	    _, err = reconcile.ApplyPlan(ctx, mutator, plan, reconcile.Options{Confirmed: true})
//	}
package reconcile
