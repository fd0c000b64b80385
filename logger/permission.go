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

package logger

// Permission is consulted on every log request. The Environment type
// implements it so that sessions other than the main session leave no entries
// in the central log.
type Permission interface {
	AllowLogging() bool
}

// PermissionFunc adapts an ordinary function to the Permission interface.
type PermissionFunc func() bool

// AllowLogging implements the Permission interface.
func (f PermissionFunc) AllowLogging() bool {
	return f()
}

// Allow and Deny are fixed permissions. Allow is for log entries that
// should be made regardless of the session.
var (
	Allow Permission = PermissionFunc(func() bool { return true })
	Deny  Permission = PermissionFunc(func() bool { return false })
)
