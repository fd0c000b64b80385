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

// Package tracker runs the vision pipeline against camera frames in a
// separate goroutine. The results of each cycle are written back to the
// controller state through the Source interface.
//
// The worker is woken once for every update started by the guest. Waiting for
// the result of a cycle is done with WaitForResult(), which returns
// immediately if there is no cycle outstanding.
package tracker
