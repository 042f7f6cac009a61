// Package naming derives safe, collision-resistant, filesystem-legal file
// names from record metadata and HTTP response hints.
//
// The resolver is pure: no I/O, deterministic for the same inputs (aside
// from the timestamp fallback when the record carries no date). Its output
// is always non-empty, bounded to 200 characters, and free of characters
// that are illegal on common filesystems.
package naming
