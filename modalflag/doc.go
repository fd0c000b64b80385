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

// Package modalflag extends the flag package with program modes. A mode is a
// command line argument that selects a different mode of operation, each with
// its own set of flags. Modes can be nested to any depth.
//
// Arguments are given once with NewArgs(). Each layer of the command line is
// then defined and parsed in turn:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "HUES")
//
//	p, err := md.Parse()
//	if p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		slots := md.AddInt("slots", 1, "number of controllers")
//		p, err = md.Parse()
//		...
//	}
//
// The first sub-mode is the default and is selected if the next argument is
// not a sub-mode. Sub-mode comparisons ignore case.
//
// The "-help" flag prints the flags and sub-modes of the current layer to the
// Output writer, in which case Parse() returns ParseHelp.
package modalflag
