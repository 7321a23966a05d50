// Package storage persists one JSON array document per record type. Every
// operation loads the whole file and every mutation rewrites it; there is no
// incremental persistence and no index beyond a linear scan by the callers.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CorruptPolicy decides what Load does with an unreadable document.
type CorruptPolicy string

const (
	// CorruptReset silently reinitializes a missing, empty or unparseable
	// file to an empty collection. Trades durability for availability.
	CorruptReset CorruptPolicy = "reset"
	// CorruptError surfaces unparseable content as a hard failure.
	CorruptError CorruptPolicy = "error"
)

// ParseCorruptPolicy validates a configured policy string.
func ParseCorruptPolicy(s string) (CorruptPolicy, error) {
	switch CorruptPolicy(s) {
	case CorruptReset, CorruptError:
		return CorruptPolicy(s), nil
	}
	return "", fmt.Errorf("unknown corrupt policy %q", s)
}

// Document is a single flat-file JSON document. It performs no locking of
// its own; callers serialize access.
type Document struct {
	path   string
	policy CorruptPolicy
}

// NewDocument creates a document backed by the file at path.
func NewDocument(path string, policy CorruptPolicy) *Document {
	return &Document{path: path, policy: policy}
}

// Path returns the backing file path.
func (d *Document) Path() string {
	return d.path
}

// Load reads the whole document into v. A missing or empty file is
// initialized to an empty collection. Unparseable content follows the
// corrupt policy: reset reinitializes and returns the empty collection,
// error reports the parse failure.
func (d *Document) Load(v any) error {
	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		return d.reset()
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", d.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return d.reset()
	}
	if err := json.Unmarshal(data, v); err != nil {
		if d.policy == CorruptReset {
			return d.reset()
		}
		return fmt.Errorf("parse %s: %w", d.path, err)
	}
	return nil
}

// Save rewrites the whole document from v.
func (d *Document) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", d.path, err)
	}
	return d.write(data)
}

func (d *Document) reset() error {
	return d.write([]byte("[]"))
}

func (d *Document) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	return nil
}
