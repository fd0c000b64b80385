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

package guestmem_test

import (
	"testing"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/guestmem"
	"github.com/jetsetilly/gemcore/test"
)

func TestAlloc(t *testing.T) {
	mem := guestmem.NewMemory(0x1000, 0x1000)

	a, err := mem.Alloc(0x10, 0x100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x1000))

	b, err := mem.Alloc(0x10, 0x100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b, uint32(0x1100))
	test.ExpectEquality(t, mem.Allocations(), 2)

	// memory can be written through the slice
	copy(mem.Bytes(b, 4), []byte{1, 2, 3, 4})
	test.ExpectEquality(t, mem.Bytes(b+2, 1)[0], uint8(3))

	_, err = mem.Alloc(0x1000, 1)
	test.ExpectSuccess(t, curated.Is(err, guestmem.OutOfMemory))

	_, err = mem.Alloc(0x10, 3)
	test.ExpectSuccess(t, curated.Is(err, guestmem.BadAlignment))

	test.ExpectSuccess(t, mem.Free(a))
	test.ExpectSuccess(t, curated.Is(mem.Free(a), guestmem.UnknownHandle))
	test.ExpectSuccess(t, mem.Free(b))

	// region is rewound once everything is freed
	c, err := mem.Alloc(0x10, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c, uint32(0x1000))
}

func TestBytes(t *testing.T) {
	mem := guestmem.NewMemory(0x1000, 0x100)
	test.ExpectEquality(t, len(mem.Bytes(0x1000, 0x100)), 0x100)
	test.ExpectSuccess(t, mem.Bytes(0x1001, 0x100) == nil)
	test.ExpectSuccess(t, mem.Bytes(0x0fff, 1) == nil)
	test.ExpectSuccess(t, mem.Bytes(0, 1) == nil)
}
