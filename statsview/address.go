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

package statsview

import "fmt"

// DefaultAddress of the statistics server.
const DefaultAddress = "localhost:12600"

// Sentinal error patterns.
const (
	NotAvailable = "statsview: not available in this build"
	BadAddress   = "statsview: bad address: %v"
)

func url(addr string) string {
	return fmt.Sprintf("http://%s/debug/statsview", addr)
}
