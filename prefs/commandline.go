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

package prefs

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// the command line stack allows preferences to be overridden for the
// duration of a session without changing the preferences file. values in the
// top group are consumed by Disk.Load()
var commandLine struct {
	crit  sync.Mutex
	stack []map[string]string
}

// PushCommandLineStack parses a command line and adds it as a new group. The
// format of the string is a list of key/value pairs separated by a
// semi-colon. Keys and values are separated by a double colon.
//
//	gem.paintspheres::true; gem.cone.h::20
func PushCommandLineStack(prefs string) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	group := make(map[string]string)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if ok {
			group[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	commandLine.stack = append(commandLine.stack, group)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the "unused" preferences of the popped group, sorted by key.
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	if len(commandLine.stack) == 0 {
		return ""
	}

	popped := commandLine.stack[len(commandLine.stack)-1]
	commandLine.stack = commandLine.stack[:len(commandLine.stack)-1]

	keys := make([]string, 0, len(popped))
	for k := range popped {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s::%s", k, popped[k]))
	}
	return strings.Join(s, "; ")
}

// GetCommandLinePref value from current group. The value is deleted when it
// is returned.
func GetCommandLinePref(key string) (bool, string) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	if len(commandLine.stack) == 0 {
		return false, ""
	}

	top := commandLine.stack[len(commandLine.stack)-1]
	if v, ok := top[key]; ok {
		delete(top, key)
		return true, v
	}

	return false, ""
}
