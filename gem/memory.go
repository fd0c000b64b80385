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

package gem

// Memory is implemented by the guest memory service.
type Memory interface {
	// Alloc allocates size bytes with the alignment and returns the handle.
	Alloc(size uint32, alignment uint32) (uint32, error)

	// Free the allocation with the handle.
	Free(handle uint32) error

	// Bytes returns the memory starting at the handle. Returns nil if the
	// memory is not available.
	Bytes(handle uint32, size int) []byte
}

// memorySize is the size of the workspace required for the number of
// controllers. The maximum number of controllers is not checked.
func memorySize(maxConnect int) uint32 {
	if maxConnect <= 2 {
		return 0x120000
	}
	return 0x140000
}

// workspace allocations are aligned to a 64k page
const workspaceAlignment = 0x10000
