package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a module name. Stores key resident module
// debug data by this 64-bit ID instead of the name itself.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
