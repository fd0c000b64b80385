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

// Package statsview serves runtime statistics over HTTP while the subsystem is
// running. The server is only built when the statsview build tag is present.
// Without the tag Available() returns false and Launch() returns the
// NotAvailable error.
//
// Once launched on the default address, charts of memory use and goroutines
// can be viewed at:
//
//	localhost:12600/debug/statsview
//
// The standard pprof pages are at:
//
//	localhost:12600/debug/pprof/
//
// Frame rates of the tracker and of the conversion worker are most easily
// investigated with the goroutine chart while a session is running.
package statsview
