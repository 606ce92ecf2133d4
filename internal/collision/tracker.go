// Package collision guards the hash-keyed module index of a debug store.
//
// Stores key module debug data by the 64-bit hash of the module name. The
// hash space is large but not collision-free, so every insert is checked
// against the names already tracked. A collision cannot be repaired without
// changing the key scheme, so it is reported as an error instead of being
// absorbed silently.
package collision

import (
	"github.com/arloliu/codeview/errs"
)

// Tracker maps module IDs back to the names that produced them.
type Tracker struct {
	names map[uint64]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
	}
}

// Track records a module name under its hash. It fails with
// ErrInvalidModuleName for an empty name, ErrModuleAlreadyStored when the
// same name is tracked twice, and ErrModuleNameCollision when a different
// name already occupies the hash.
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidModuleName
	}

	if existing, ok := t.names[hash]; ok {
		if existing == name {
			return errs.ErrModuleAlreadyStored
		}

		return errs.ErrModuleNameCollision
	}

	t.names[hash] = name

	return nil
}

// Name returns the module name tracked under the given hash.
func (t *Tracker) Name(hash uint64) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// Count returns the number of tracked modules.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked modules, preserving map capacity.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}
}
