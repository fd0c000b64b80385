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

package inputs

import "github.com/jetsetilly/gemcore/gem/coords"

// Null is a backend that is never connected.
type Null struct{}

// Kind implements the Backend interface.
func (*Null) Kind() Kind {
	return KindNull
}

// Bind implements the Backend interface.
func (*Null) Bind(_ int) Binding {
	return Binding{}
}

// Buttons implements the Backend interface.
func (*Null) Buttons(_ int) (Buttons, uint16) {
	return 0, 0
}

// Position implements the Backend interface.
func (*Null) Position(_ int) (coords.Sample, bool) {
	return coords.Sample{}, false
}

// ExtPort implements the Backend interface.
func (*Null) ExtPort(_ int) (ExtPortData, ExtStatus, bool) {
	return ExtPortData{}, ExtStatus{}, false
}
