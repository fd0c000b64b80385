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

// Package psmove implements the MotionPadHandler interface of the gem/inputs
// package for native motion controllers connected over USB or Bluetooth HID.
//
// Each controller is polled by its own goroutine. Input reports are decoded
// into an inputs.PadState and output reports (LED colour and rumble) are sent
// whenever they change and periodically otherwise, because the controller
// turns the LED off if it is not refreshed.
//
// Sensor values are uncalibrated. The conversion constants are approximations
// for the original model of the controller.
package psmove
