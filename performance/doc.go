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

// Package performance contains helpers for measuring the run loop.
//
// RunProfiler() runs a function with CPU profiling and writes a heap profile
// when the function returns, as requested by the Profile argument.
//
// CalcFPS() calculates the achieved frame rate in aggregate along with its
// accuracy as compared to the requested rate. It is not suitable for "live"
// monitoring.
package performance
