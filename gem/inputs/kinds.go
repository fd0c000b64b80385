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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gemcore/curated"
)

// MaxSlots is the maximum number of motion controllers.
const MaxSlots = 4

// MaxPadPorts is the number of pad ports on the host. Motion controllers use
// the last four ports.
const MaxPadPorts = 7

// PadIndex returns the index of the pad used by the slot. Indexes start at
// zero.
func PadIndex(slot int) int {
	return MaxPadPorts - 1 - slot
}

// Port returns the port number assigned to the slot when it is connected.
// Port numbers start at one.
func Port(slot int) uint32 {
	return uint32(MaxPadPorts - slot)
}

// Kind of backend.
type Kind int

// List of valid Kind values.
const (
	KindNull Kind = iota
	KindMove
	KindGamepad
	KindMouse
	KindRawMouse
	KindGun
)

// Kinds is the list of names for every Kind value, in order.
var Kinds = []string{"null", "move", "gamepad", "mouse", "rawmouse", "gun"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(Kinds) {
		return fmt.Sprintf("unknown (%d)", int(k))
	}
	return Kinds[k]
}

// UnknownKind is the sentinel error pattern returned by ParseKind().
const UnknownKind = "inputs: unknown backend kind (%s)"

// ParseKind returns the Kind for the name. The comparison ignores case.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range Kinds {
		if n == name {
			return Kind(i), nil
		}
	}
	return KindNull, curated.Errorf(UnknownKind, name)
}
