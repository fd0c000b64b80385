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

// Package guestmem is a simple model of guest memory. Allocations are made
// from a single contiguous region by advancing a pointer. The region is
// rewound when every allocation has been freed.
//
// Handles are addresses in the guest address space. The zero handle is never
// returned by Alloc() and so can be used by callers to mean "no memory".
package guestmem
