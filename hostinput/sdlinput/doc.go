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

// Package sdlinput implements the PadHandler and MouseHandler interfaces of
// the gem/inputs package using SDL.
//
// SDL events must be serviced on the main thread. The Service() function
// should be called regularly from the main thread. The state of the devices
// is updated by Service() and can then be read from any goroutine.
package sdlinput
