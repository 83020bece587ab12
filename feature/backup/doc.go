// Package backup snapshots namespaces into S3 compatible object storage.
//
// A snapshot is a single JSON object holding every key of a namespace:
//
//	{"namespace": "my-app", "createdAt": "...", "entries": {"user:1": {...}}}
//
// stored as <prefix>/<namespace>/<unix-millis>.json. Values are read and written
// through kv.Store, so the same code backs up the hosted API (kv.Client) or the
// local emulator (store.Local).
//
// # Operations
//
//   - Export: lists the namespace, reads values with bounded concurrency and uploads the snapshot.
//   - List: lists snapshots of a namespace, newest first.
//   - Verify: diffs a snapshot against the live namespace with the reconcile engine.
//   - Restore: plans the puts (and, with prune, deletes) needed to match the snapshot and applies them.
//   - Remove: deletes a snapshot object.
//
// # HTTP Endpoints
//
//   - GET /backups/:namespace : Lists snapshots.
//   - POST /backups/:namespace : Exports a snapshot.
//   - DELETE /backups/:namespace?object= : Removes a snapshot.
//   - GET /backups/:namespace/verify : Verifies a snapshot (supports ?object=).
//   - POST /backups/:namespace/restore : Restores a snapshot (supports ?object=, ?prune=true, ?confirm=true).
package backup
