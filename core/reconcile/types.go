package reconcile

import (
	"context"
	"encoding/json"
)

// Index maps keys of one namespace to their raw JSON values.
type Index map[string]json.RawMessage

// Loader builds the index of one side of a comparison.
type Loader func(ctx context.Context) (Index, error)

// Result represents the comparison of a single key.
type Result struct {
	// Key is the entry key.
	Key string `json:"key"`

	// ExpectedPresent indicates whether the key exists in the reference side (e.g. a snapshot).
	ExpectedPresent bool `json:"expected_present"`

	// ActualPresent indicates whether the key exists in the compared side (e.g. the live namespace).
	ActualPresent bool `json:"actual_present"`

	// Mismatch is set when the key exists on both sides with different JSON values.
	Mismatch bool `json:"mismatch"`
}

// InSync reports whether both sides hold the same value for the key.
func (r Result) InSync() bool {
	return r.ExpectedPresent && r.ActualPresent && !r.Mismatch
}

// Summary provides aggregate counts over a set of results.
type Summary struct {
	// Total is the number of distinct keys across both sides.
	Total int `json:"total"`

	// InSync counts keys with identical values on both sides.
	InSync int `json:"in_sync"`

	// MissingActual counts keys only present on the expected side.
	MissingActual int `json:"missing_actual"`

	// MissingExpected counts keys only present on the actual side.
	MissingExpected int `json:"missing_expected"`

	// Mismatches counts keys whose values differ.
	Mismatches int `json:"mismatches"`
}

// Clean reports whether the two sides are identical.
func (s Summary) Clean() bool {
	return s.MissingActual == 0 && s.MissingExpected == 0 && s.Mismatches == 0
}

// Report is the outcome of a full comparison.
type Report struct {
	// Results holds one entry per key, sorted by key.
	Results []Result `json:"results"`

	// Summary aggregates Results.
	Summary Summary `json:"summary"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionPut writes the expected value to the actual side.
	ActionPut ActionType = "put"
	// ActionDelete removes a key that only exists on the actual side.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation of the actual side.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entry key.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Value is the expected value for ActionPut.
	Value json.RawMessage `json:"-"`
}

// Plan contains comparison results and the actions that would align both sides.
type Plan struct {
	Report

	// Actions contains planned mutation operations, sorted by key.
	Actions []Action `json:"actions"`
}

// Options controls which actions a plan contains and whether they run.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Prune plans deletion of keys missing on the expected side.
	Prune bool

	// Confirmed indicates the caller accepted the mutations.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}

// Mutator applies actions to the actual side.
type Mutator interface {
	Put(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
}

// BatchMutator is implemented by mutators that apply many actions at once,
// typically concurrently. ApplyPlan prefers it over one-at-a-time calls.
type BatchMutator interface {
	Mutator
	ApplyBatch(ctx context.Context, actions []Action) (int, error)
}
