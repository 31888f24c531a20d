// Package stream implements the append-only, 128-bit-ID-keyed log backing
// XADD: entries live in a byte-indexed radix trie over the big-endian bytes
// of their ID, grounded on the original Rust implementation's
// TreeNodeId/RadixTree/TreeNode design.
package stream

import (
	"fmt"
	"math"
)

// ID is a 128-bit monotonic stream entry identifier, represented as the
// pair the wire format uses: hi-lo.
type ID struct {
	Hi uint64
	Lo uint64
}

// Less reports whether id is strictly less than other.
func (id ID) Less(other ID) bool {
	if id.Hi != other.Hi {
		return id.Hi < other.Hi
	}
	return id.Lo < other.Lo
}

// String renders the canonical "hi-lo" wire text for an ID.
func (id ID) String() string {
	return fmt.Sprintf("%d-%d", id.Hi, id.Lo)
}

// next computes the successor of id, carrying into Hi on Lo overflow. ok is
// false if the ID space is exhausted (id is the maximum representable ID).
func (id ID) next() (ID, bool) {
	if id.Lo == math.MaxUint64 {
		if id.Hi == math.MaxUint64 {
			return ID{}, false
		}
		return ID{Hi: id.Hi + 1, Lo: 0}, true
	}
	return ID{Hi: id.Hi, Lo: id.Lo + 1}, true
}

// bytes returns the 16 big-endian bytes of id, MSB-first, the order the
// radix trie indexes on.
func (id ID) bytes() [16]byte {
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[7-i] = byte(id.Hi >> (8 * i))
		b[15-i] = byte(id.Lo >> (8 * i))
	}
	return b
}
