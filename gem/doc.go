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

// Package gem emulates the guest side of a camera tracked motion controller
// subsystem. A System holds the controller slots, calibration, tracking
// results and video conversion state, and answers the guest operations
// against them.
//
// Controller input comes from an inputs.Backend. Sphere positions come from
// the tracker package, which runs in its own goroutine and is driven by the
// UpdateStart and UpdateFinish handshake. Video conversion runs in a second
// worker goroutine and is driven by ConvertVideoStart and ConvertVideoFinish.
//
// Guest visible failures are reported as Code values. Host side failures
// are curated errors.
package gem
