// Package audit records ejgo operations in an optional JSON lines trail.
//
// The trail is enabled by setting audit_log in config.toml. Each line is one
// operation:
//
//	{"ts":"2026-01-15T10:30:00.123456Z","run_id":"...","op":"encrypt","files":["secrets.ejson"],"public_key":"b595..."}
//
// Entries written by the same process share a run_id. Entries hold file
// paths and public keys only, never private keys or plaintext.
//
// # Failure Handling
//
// Log returns an error so callers can warn about it, but callers must not
// fail the operation it describes.
package audit
