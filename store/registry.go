// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// DuplicateMappingError is returned when a source ID would be remapped to a
// different target ID, or a target ID would be claimed by a second source ID.
// Either case means the registry no longer describes a one-to-one migration
// and the run must stop.
type DuplicateMappingError struct {
	SourceID int64
	Existing int64
	Proposed int64
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("source issue %d is already mapped to target %d, refusing to remap to %d",
		e.SourceID, e.Existing, e.Proposed)
}

// Registry is the durable translation table from source issue IDs to target
// issue indexes. It is the single source of truth for cross-reference
// resolution and for resuming an interrupted run.
type Registry interface {
	Record(sourceID, targetID int64) error
	Resolve(sourceID int64) (int64, bool)
	Has(sourceID int64) bool
	Len() int
	Persist() error
	Load() error
}

// FileRegistry keeps the mapping in memory and persists it to a JSON file
// with numerically sorted keys, so the file is diffable and inspectable.
// Writes go through a temp file plus rename so a crash mid-write never
// truncates the previous state.
type FileRegistry struct {
	path string

	mu      sync.Mutex
	mapping map[int64]int64
	sources map[int64]int64 // reverse index, target -> source
}

func NewFileRegistry(path string) *FileRegistry {
	return &FileRegistry{
		path:    path,
		mapping: map[int64]int64{},
		sources: map[int64]int64{},
	}
}

// Record adds one source->target pair. Re-recording an identical pair is a
// no-op; any conflicting pair fails with DuplicateMappingError.
func (r *FileRegistry) Record(sourceID, targetID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.mapping[sourceID]; ok {
		if existing == targetID {
			return nil
		}
		return &DuplicateMappingError{SourceID: sourceID, Existing: existing, Proposed: targetID}
	}
	if prior, ok := r.sources[targetID]; ok {
		return &DuplicateMappingError{SourceID: prior, Existing: targetID, Proposed: targetID}
	}

	r.mapping[sourceID] = targetID
	r.sources[targetID] = sourceID

	return nil
}

func (r *FileRegistry) Resolve(sourceID int64) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targetID, ok := r.mapping[sourceID]
	return targetID, ok
}

func (r *FileRegistry) Has(sourceID int64) bool {
	_, ok := r.Resolve(sourceID)
	return ok
}

func (r *FileRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.mapping)
}

// Persist writes the whole mapping to the registry file. Callers invoke it
// after every successful Record, so a crash loses at most the in-flight pair.
func (r *FileRegistry) Persist() error {
	r.mu.Lock()
	data := r.marshalLocked()
	r.mu.Unlock()

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".registry-*.json")
	if err != nil {
		return errors.Wrap(err, "unable to create temp registry file")
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "unable to write registry")
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "unable to close registry temp file")
	}

	if err = os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "unable to replace registry file")
	}

	return nil
}

// Load seeds the registry from a previous run's file. A missing file is not
// an error, it just means this is a fresh run.
func (r *FileRegistry) Load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "unable to read registry file")
	}

	var raw map[string]int64
	if err = json.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "registry file %s is corrupt", r.path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, targetID := range raw {
		sourceID, convErr := strconv.ParseInt(key, 10, 64)
		if convErr != nil {
			return errors.Wrapf(convErr, "registry file %s has a non-numeric key %q", r.path, key)
		}
		if prior, ok := r.sources[targetID]; ok && prior != sourceID {
			return &DuplicateMappingError{SourceID: prior, Existing: targetID, Proposed: targetID}
		}
		r.mapping[sourceID] = targetID
		r.sources[targetID] = sourceID
	}

	return nil
}

// marshalLocked renders the mapping with keys in ascending numeric order.
// encoding/json would sort map keys lexicographically, which interleaves
// "10" before "2" and makes the file awkward to inspect.
func (r *FileRegistry) marshalLocked() []byte {
	keys := make([]int64, 0, len(r.mapping))
	for key := range r.mapping {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range keys {
		fmt.Fprintf(&buf, "  %q: %d", strconv.FormatInt(key, 10), r.mapping[key])
		if i < len(keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes()
}
