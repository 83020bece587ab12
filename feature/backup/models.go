package backup

import (
	"encoding/json"
	"time"

	"kv-storage/core/reconcile"
)

// Snapshot is the object written to storage for one namespace.
type Snapshot struct {
	// Namespace is the namespace the entries were read from.
	Namespace string `json:"namespace"`
	// CreatedAt is when the export started.
	CreatedAt time.Time `json:"createdAt"`
	// Entries maps every key to its stored JSON value.
	Entries map[string]json.RawMessage `json:"entries"`
}

// Info describes a snapshot object.
type Info struct {
	Object    string    `json:"object"`
	Namespace string    `json:"namespace"`
	Keys      int       `json:"keys,omitempty"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// RestoreResult reports what a restore planned and executed.
type RestoreResult struct {
	Object   string             `json:"object"`
	Summary  reconcile.Summary  `json:"summary"`
	Actions  []reconcile.Action `json:"actions"`
	Executed int                `json:"executed"`
}

// VerifyResult compares a snapshot (expected) with the live namespace (actual).
type VerifyResult struct {
	Object string `json:"object"`
	reconcile.Report
}
