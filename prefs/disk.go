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
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/jetsetilly/gemcore/curated"
	"gopkg.in/yaml.v3"
)

// Sentinal error patterns
const (
	NoPrefsFile    = "prefs: no prefs file (%s)"
	DuplicateEntry = "prefs: duplicate entry (%s)"
	InvalidValue   = "prefs: invalid value for %s: %v"
)

// Disk represents preference values as stored on disk. Many Disk instances
// can share the same file. Entries in the file that are not owned by a Disk
// instance are retained when it saves.
//
// The file is a flat YAML mapping of keys to string values. Keys are dotted
// paths by convention.
//
//	gem.backend: move
//	gem.player.0.hue: "240"
type Disk struct {
	path    string
	entries map[string]Pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]Pref),
	}, nil
}

// Add preference value to list of values to store/load from Disk. The key
// value is used to identify the entry in the file.
func (dsk *Disk) Add(key string, p Pref) error {
	key = strings.TrimSpace(key)
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateEntry, key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset all entries to their default values. Default here meaning the zero
// value of the type.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return err
		}
	}
	return nil
}

func (dsk *Disk) read() (map[string]string, error) {
	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return nil, curated.Errorf("prefs: %v", err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, curated.Errorf("prefs: %s: %v", dsk.path, err)
	}
	return values, nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	values, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		values = make(map[string]string)
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	if err := os.WriteFile(dsk.path, data, 0o644); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load preference values from disk. Values in the top group of the command
// line stack override the values in the file. A missing file is reported
// with the NoPrefsFile error, after the command line values have been
// applied.
func (dsk *Disk) Load() error {
	values, readErr := dsk.read()
	if readErr != nil && !curated.Is(readErr, NoPrefsFile) {
		return readErr
	}

	for k, p := range dsk.entries {
		v, ok := values[k]
		if override, cl := GetCommandLinePref(k); override {
			v = cl
			ok = true
		}
		if !ok {
			continue
		}
		if err := p.Set(v); err != nil {
			return curated.Errorf(InvalidValue, k, err)
		}
	}

	return readErr
}
