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

package performance_test

import (
	"errors"
	"os"
	"testing"

	"github.com/jetsetilly/gemcore/performance"
	"github.com/jetsetilly/gemcore/test"
)

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(300, 10, 60)
	test.ExpectApproximate(t, fps, 30, 0.0001)
	test.ExpectApproximate(t, accuracy, 50, 0.0001)

	fps, accuracy = performance.CalcFPS(300, 0, 60)
	test.ExpectEquality(t, fps, 0.0)
	test.ExpectEquality(t, accuracy, 0.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfileString("cpu, MEM")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	p, err = performance.ParseProfileString("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfileString("trace")
	test.ExpectFailure(t, err)
}

func TestRunProfiler(t *testing.T) {
	t.Chdir(t.TempDir())

	ran := false
	err := performance.RunProfiler(performance.ProfileCPU|performance.ProfileMem, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat("test_cpu.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat("test_mem.profile")
	test.ExpectSuccess(t, err)

	// the error from the function is returned
	sentinal := errors.New("stop")
	err = performance.RunProfiler(performance.ProfileNone, "test", func() error {
		return sentinal
	})
	test.ExpectEquality(t, err, sentinal)
}
