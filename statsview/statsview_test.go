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

//go:build !statsview

package statsview_test

import (
	"testing"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/statsview"
	"github.com/jetsetilly/gemcore/test"
)

func TestUnavailable(t *testing.T) {
	test.ExpectFailure(t, statsview.Available())
	_, err := statsview.Launch("")
	test.ExpectSuccess(t, curated.Is(err, statsview.NotAvailable))
}
