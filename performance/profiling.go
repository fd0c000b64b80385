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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/jetsetilly/gemcore/curated"
)

// Profile specifies which profiles are created by RunProfiler().
type Profile int

// List of valid Profile flags. The flags can be combined.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 0x01
	ProfileMem  Profile = 0x02
)

// Sentinal error patterns.
const (
	UnknownProfile = "performance: unknown profile type (%s)"
	ProfileError   = "performance: %v"
)

// ParseProfileString converts a comma separated list of profile names to a
// Profile value. Valid names are "cpu", "mem" and "none".
func ParseProfileString(s string) (Profile, error) {
	p := ProfileNone
	for _, t := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "none":
		case "cpu":
			p |= ProfileCPU
		case "mem":
			p |= ProfileMem
		default:
			return ProfileNone, curated.Errorf(UnknownProfile, t)
		}
	}
	return p, nil
}

// RunProfiler runs the function with the requested profiles. Profile files are
// named with the prefix, for example "run_cpu.profile".
func RunProfiler(profile Profile, prefix string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", prefix))
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileMem == ProfileMem {
		defer func() {
			if err := memProfile(fmt.Sprintf("%s_mem.profile", prefix)); err != nil && rerr == nil {
				rerr = err
			}
		}()
	}

	return run()
}

func memProfile(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return curated.Errorf(ProfileError, err)
	}
	return nil
}
