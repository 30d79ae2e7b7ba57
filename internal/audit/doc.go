// Package audit records what fortress did on this machine.
//
// Entries are appended as JSON Lines to <data dir>/audit.jsonl with mode
// 0600. Each entry has an id, a UTC timestamp, the OS user, the
// installation id and device name from the user config, the operation and
// operation-specific details such as input and output paths or byte counts.
// Passwords, security keys and plaintext are never recorded.
//
// # Usage
//
//	entry := audit.LogWithUser(audit.OpEncrypt)
//	entry.Files = inputs
//	entry.Outputs = outputs
//	audit.Record(entry)
//
// Record is a no-op when defaults.audit is false. Logging is best-effort:
// write failures are ignored.
//
// ReadEntries skips malformed lines so a truncated final write does not
// hide the rest of the log.
package audit
