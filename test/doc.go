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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions report a failure with t.Errorf() and allow the test to
// continue. The Demand functions report a failure with t.Fatalf() and should
// be used when the result is needed by later parts of the test.
//
// ExpectSuccess() and ExpectFailure() test for success under generic
// conditions. Currently supported types:
//
//	bool -> true is success
//	error -> nil is success
//	Failer -> Failed() == false is success
//	nil -> success
//
// The nil type is considered a success because of how errors usually work.
// The Failer interface is implemented by status codes that report success
// and informational results through the same value as hard failures.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output for comparison.
package test
