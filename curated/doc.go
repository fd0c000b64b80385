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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are used for host side failures: preferences that cannot be
// read, devices that cannot be opened, snapshots that cannot be decoded.
// Results returned to guest software are not errors in this sense and use
// the gem.Code type instead.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern, placeholder values and returns an error.
//
//	e := curated.Errorf("psmove: %v", err)
//
// The Is() function checks whether an error was created with a specific
// pattern. The Has() function checks whether the pattern occurs anywhere in
// the chain.
//
//	f := curated.Errorf("hostinput: %v", e)
//
//	curated.Is(f, "psmove: %v")  // false
//	curated.Has(f, "psmove: %v") // true
//
// The error chain is normalised when Error() is called. Repeated adjacent
// parts of the message are removed, so that wrapping an error with the same
// prefix twice does not produce a stuttering message:
//
//	prefs: prefs: file not found
//
// becomes
//
//	prefs: file not found
//
// Parts are the sub-strings separated by ": ".
package curated
