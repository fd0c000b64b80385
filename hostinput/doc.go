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

// Package hostinput is the parent of the packages that implement the host
// device handlers used by the gem/inputs backends.
//
// The sdlinput package provides pads and the mouse through SDL. The psmove
// package talks directly to native motion controllers over USB HID. The
// lightgun package provides gun-style pointing devices through the Linux
// joystick interface.
package hostinput
