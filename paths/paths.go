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

package paths

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/gemcore/curated"
)

// the local base path takes priority over the user's config directory
const (
	localBase  = ".gemcore"
	configBase = "gemcore"
)

// ResourcePath returns the path to the file in the sub-directory of the base
// resource path. The sub-directory is created if it does not exist. Either
// argument can be empty.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", curated.Errorf("paths: %v", err)
	}

	dir := filepath.Join(base, subPth)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", curated.Errorf("paths: %v", err)
	}

	return filepath.Join(dir, file), nil
}

func basePath() (string, error) {
	if st, err := os.Stat(localBase); err == nil && st.IsDir() {
		return localBase, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cnf, configBase), nil
}
