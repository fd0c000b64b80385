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

	"github.com/jetsetilly/gemcore/gem/preferences"
)

// Label is used to name the environment
type Label string

// MainSession is the label used for the session driven by the user. Other
// sessions (tests, previews) should use a different label.
const MainSession = Label("")

// Environment is used to provide context for the motion controller subsystem.
// It replaces what would otherwise be process wide state: the source of time,
// whether input is currently allowed and the preferences.
type Environment struct {
	Label Label

	// the subsystem preferences
	Prefs *preferences.Preferences

	// source of guest system time
	Clock Clock

	// input is disallowed while the emulation is paused
	inputDisallowed atomic.Bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance with
// default values and no backing file is created. A nil clock means that the
// system clock will be used.
func NewEnvironment(label Label, prefs *preferences.Preferences, clock Clock) (*Environment, error) {
	env := &Environment{
		Label: label,
		Clock: clock,
	}

	if env.Clock == nil {
		env.Clock = NewSystemClock()
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}
	env.Prefs = prefs

	return env, nil
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.IsMain()
}

// IsMain returns true if the environment is intended for the main session.
func (env *Environment) IsMain() bool {
	return env.Label == MainSession
}

// InputAllowed returns false if input from host devices should be ignored.
func (env *Environment) InputAllowed() bool {
	return !env.inputDisallowed.Load()
}

// SetInputAllowed sets whether input from host devices should be used.
func (env *Environment) SetInputAllowed(allowed bool) {
	env.inputDisallowed.Store(!allowed)
}
