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

package environment

import (
	"sync/atomic"
	"time"
)

// Clock is the source of guest system time, in microseconds.
type Clock interface {
	Now() uint64
}

// SystemClock measures time since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock is the preferred method of initialisation for the
// SystemClock type.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now implements the Clock interface.
func (c *SystemClock) Now() uint64 {
	return uint64(time.Since(c.start).Microseconds())
}

// ManualClock only changes when it is told to. Useful for testing time
// dependent behaviour.
type ManualClock struct {
	now atomic.Uint64
}

// Now implements the Clock interface.
func (c *ManualClock) Now() uint64 {
	return c.now.Load()
}

// Set the time returned by Now().
func (c *ManualClock) Set(us uint64) {
	c.now.Store(us)
}

// Advance the clock by the specified number of microseconds.
func (c *ManualClock) Advance(us uint64) {
	c.now.Add(us)
}
