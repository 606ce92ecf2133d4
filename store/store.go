// Package store keeps the raw debug data of many modules resident in
// memory, compressed.
//
// Symbol servers and crash analyzers hold debug information for thousands of
// modules but decode only the few that frames actually hit. The store keeps
// each module's bytes compressed under the 64-bit hash of its module name
// and decompresses on access; line programs are parsed through on demand and
// never cached, matching their cheap zero-copy construction.
package store

import (
	"fmt"
	"sync"

	"github.com/arloliu/codeview/compress"
	"github.com/arloliu/codeview/crossmod"
	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/collision"
	"github.com/arloliu/codeview/internal/hash"
	"github.com/arloliu/codeview/lines"
)

// Store is a compressed, name-keyed collection of module debug data. It is
// safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	codec   compress.Codec
	tracker *collision.Tracker
	modules map[uint64][]byte
}

// New creates an empty store compressing module data with the given
// algorithm.
func New(compression format.CompressionType) (*Store, error) {
	codec, err := compress.ForType(compression)
	if err != nil {
		return nil, err
	}

	return &Store{
		codec:   codec,
		tracker: collision.NewTracker(),
		modules: make(map[uint64][]byte),
	}, nil
}

// Put compresses and stores a module's debug data under its name, returning
// the module's 64-bit ID. Storing the same name twice fails with
// ErrModuleAlreadyStored; two distinct names hashing to the same ID fail
// with ErrModuleNameCollision.
//
// The data is copied by compression for every algorithm except None, where
// the store aliases the caller's slice; callers using CompressionNone must
// not modify the data afterwards.
func (s *Store) Put(name string, moduleData []byte) (uint64, error) {
	id := hash.ID(name)

	compressed, err := s.codec.Compress(moduleData)
	if err != nil {
		return 0, fmt.Errorf("compress module %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tracker.Track(name, id); err != nil {
		return 0, fmt.Errorf("module %q: %w", name, err)
	}
	s.modules[id] = compressed

	return id, nil
}

// Data returns the decompressed debug data of the named module.
func (s *Store) Data(name string) ([]byte, error) {
	s.mu.RLock()
	compressed, ok := s.modules[hash.ID(name)]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("module %q: %w", name, errs.ErrModuleNotFound)
	}

	data, err := s.codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress module %q: %w", name, err)
	}

	return data, nil
}

// Program decompresses the named module and prepares its line program.
func (s *Store) Program(name string) (*lines.LineProgram, error) {
	data, err := s.Data(name)
	if err != nil {
		return nil, err
	}

	return lines.ParseLineProgram(data)
}

// Imports decompresses the named module and parses its cross-scope imports
// table.
func (s *Store) Imports(name string) (*crossmod.Imports, error) {
	data, err := s.Data(name)
	if err != nil {
		return nil, err
	}

	return crossmod.ParseImports(data)
}

// Exports decompresses the named module and parses its cross-scope exports
// table.
func (s *Store) Exports(name string) (*crossmod.Exports, error) {
	data, err := s.Data(name)
	if err != nil {
		return nil, err
	}

	return crossmod.ParseExports(data)
}

// Contains reports whether the store holds debug data for the named module.
func (s *Store) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.modules[hash.ID(name)]

	return ok
}

// Len returns the number of stored modules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.modules)
}
