package reconcile

import (
	"context"
	"fmt"
)

// BuildPlan compares both indices and lists the actions that make actual match expected.
// It does NOT execute actions; use ApplyPlan for that.
func BuildPlan(expected, actual Index, opts Options) *Plan {
	report := Diff(expected, actual)
	plan := &Plan{Report: *report, Actions: []Action{}}

	for _, r := range report.Results {
		switch {
		case !r.ActualPresent:
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionPut,
				Key:    r.Key,
				Reason: "missing",
				Value:  expected[r.Key],
			})
		case r.Mismatch:
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionPut,
				Key:    r.Key,
				Reason: "value mismatch",
				Value:  expected[r.Key],
			})
		case !r.ExpectedPresent && opts.Prune:
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionDelete,
				Key:    r.Key,
				Reason: "not in expected set",
			})
		}
	}

	return plan
}

// ApplyPlan executes the actions of plan in order.
// Returns the number of actions executed and the first error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, m Mutator, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	if batcher, ok := m.(BatchMutator); ok {
		return batcher.ApplyBatch(ctx, plan.Actions)
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		switch action.Type {
		case ActionPut:
			err = m.Put(ctx, action.Key, action.Value)
		case ActionDelete:
			err = m.Delete(ctx, action.Key)
		default:
			err = fmt.Errorf("unknown action type %q", action.Type)
		}
		if err != nil {
			return executed, fmt.Errorf("failed to %s key %s: %w", action.Type, action.Key, err)
		}
		executed++
	}

	return executed, nil
}
