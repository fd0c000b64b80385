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

// Package inputs translates the state of host input devices into motion
// controller input. Each backend type implements the Backend interface for one
// kind of host device:
//
//	Move      native motion controllers
//	Gamepad   any gamepad, substituting for a motion controller
//	Mouse     system mice
//	RawMouse  individual mice, each with its own connection status
//	Gun       gun style pointing devices
//	Null      no device. never connected
//
// Features that are only supported by some backends are exposed as optional
// interfaces (Inertial, Calibrator, Magnetometer, Rumbler, LEDSetter,
// ExternalPort, Orientation and Rescanner) which should be discovered with a
// type assertion.
//
// Backends talk to the host through the PadHandler, MotionPadHandler,
// MouseHandler and GunHandler interfaces. Implementations of these interfaces
// can be found in the hostinput packages.
//
// Every output of a backend is zero if the environment does not allow input
// or if the device for the slot is not connected.
package inputs
