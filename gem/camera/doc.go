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

// Package camera describes the frames published by the host camera. The Shared
// type is written to by the host camera implementation and read by the motion
// controller subsystem, both for tracking and for video conversion.
//
// Frames are identified by a guest handle. The camera publishes three buffer
// handles with every frame: the primary buffer and the two page buffers. A
// frame handle given by the guest is only accepted for tracking if it is one of
// these three.
package camera
