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

// Package paths prepares paths to gemcore resources: the preferences file and
// saved snapshots.
//
// If a directory named ".gemcore" exists in the current directory then that
// is the base of all resources. Otherwise the base is a "gemcore" directory in
// the user's config directory, as reported by os.UserConfigDir(). On a Linux
// system the preferences file is usually found at:
//
//	/home/user/.config/gemcore/gemcore.yaml
package paths
