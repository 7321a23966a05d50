// Package repository implements record persistence over flat JSON documents.
// Each repository owns one document and serializes every load-mutate-save
// cycle behind a mutex, so intra-process writers cannot lose updates.
// Multi-process deployment is unsupported without external locking.
package repository

import "errors"

// ErrNotFound is returned when a record is absent, or when a task exists but
// belongs to a different user. The two cases are deliberately
// indistinguishable.
var ErrNotFound = errors.New("record not found")
