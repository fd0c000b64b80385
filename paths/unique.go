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
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that should not collide with any existing
// file, assuming a functioning clock. The function does not check that this
// is true.
//
// The format of the returned string is:
//
//	prefix_label_YYYYMMDD_HHMMSS.ext
//
// The label is omitted if it is empty.
func UniqueFilename(prefix string, label string, ext string) string {
	timestamp := time.Now().Format("20060102_150405")

	var fn string
	if l := strings.TrimSpace(label); l != "" {
		fn = fmt.Sprintf("%s_%s_%s", prefix, l, timestamp)
	} else {
		fn = fmt.Sprintf("%s_%s", prefix, timestamp)
	}

	if ext != "" {
		fn = fmt.Sprintf("%s.%s", fn, strings.TrimPrefix(ext, "."))
	}

	return fn
}
