// This file is part of Gemcore.
//
// Gemcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gemcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gemcore.  If not, see <https://www.gnu.org/licenses/>.

package guestmem

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/gemcore/curated"
)

// Sentinal error patterns.
const (
	OutOfMemory   = "guestmem: out of memory (requested %#x bytes)"
	BadAlignment  = "guestmem: alignment must be a power of two (%#x)"
	UnknownHandle = "guestmem: unknown handle (%#08x)"
)

// DefaultBase is the address of the first byte of the region when no other
// address is specified.
const DefaultBase = 0x30000000

// Memory is a region of guest memory.
type Memory struct {
	crit sync.Mutex

	base uint32
	data []byte

	// the offset of the next free byte in data
	next uint32

	// size of each live allocation, keyed by handle
	allocs map[uint32]uint32
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The base address must not be zero.
func NewMemory(base uint32, size uint32) *Memory {
	if base == 0 {
		base = DefaultBase
	}
	return &Memory{
		base:   base,
		data:   make([]byte, size),
		allocs: make(map[uint32]uint32),
	}
}

func (mem *Memory) String() string {
	mem.crit.Lock()
	defer mem.crit.Unlock()
	return fmt.Sprintf("%d allocations, %#x of %#x bytes used", len(mem.allocs), mem.next, len(mem.data))
}

// Alloc implements the gem.Memory interface.
func (mem *Memory) Alloc(size uint32, alignment uint32) (uint32, error) {
	if alignment == 0 {
		alignment = 1
	}
	if alignment&(alignment-1) != 0 {
		return 0, curated.Errorf(BadAlignment, alignment)
	}

	mem.crit.Lock()
	defer mem.crit.Unlock()

	// alignment is of the address and not of the offset
	addr := uint64(mem.base) + uint64(mem.next)
	addr = (addr + uint64(alignment) - 1) &^ (uint64(alignment) - 1)
	end := addr + uint64(size)

	if end > uint64(mem.base)+uint64(len(mem.data)) {
		return 0, curated.Errorf(OutOfMemory, size)
	}

	handle := uint32(addr)
	mem.next = uint32(end - uint64(mem.base))
	mem.allocs[handle] = size

	return handle, nil
}

// Free implements the gem.Memory interface.
func (mem *Memory) Free(handle uint32) error {
	mem.crit.Lock()
	defer mem.crit.Unlock()

	if _, ok := mem.allocs[handle]; !ok {
		return curated.Errorf(UnknownHandle, handle)
	}
	delete(mem.allocs, handle)

	if len(mem.allocs) == 0 {
		mem.next = 0
	}

	return nil
}

// Bytes implements the gem.Memory interface. Any address in the region can be
// accessed, whether it has been allocated or not.
func (mem *Memory) Bytes(handle uint32, size int) []byte {
	if handle < mem.base || size < 0 {
		return nil
	}

	offset := uint64(handle - mem.base)
	if offset+uint64(size) > uint64(len(mem.data)) {
		return nil
	}

	return mem.data[offset : offset+uint64(size)]
}

// Allocations returns the number of live allocations.
func (mem *Memory) Allocations() int {
	mem.crit.Lock()
	defer mem.crit.Unlock()
	return len(mem.allocs)
}
