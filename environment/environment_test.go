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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/test"
)

func TestEnvironment(t *testing.T) {
	clk := &environment.ManualClock{}
	env, err := environment.NewEnvironment(environment.MainSession, nil, clk)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, env.IsMain())
	test.ExpectSuccess(t, env.AllowLogging())
	test.ExpectSuccess(t, env.InputAllowed())
	env.SetInputAllowed(false)
	test.ExpectFailure(t, env.InputAllowed())

	clk.Set(100)
	clk.Advance(50)
	test.ExpectEquality(t, env.Clock.Now(), uint64(150))

	preview, err := environment.NewEnvironment("preview", env.Prefs, nil)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, preview.AllowLogging())
}
