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

// Package prefs facilitates the storage of preferential values in the
// application. Values are live: they can be changed at any time from any
// goroutine and the new value will be seen by the next reader.
//
// Bool, Int, Float and String are the supported types. Each can have a pre
// and post hook which is called whenever the value is set.
//
// A Disk instance groups preference values for storage in a YAML file. The
// command line stack allows values to be overridden for a single session.
package prefs
