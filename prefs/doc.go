// This file is part of Thundercracker.
//
// Thundercracker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Thundercracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Thundercracker.  If not, see <https://www.gnu.org/licenses/>.

// Package prefs facilitates the storage of preferential values in the
// simulation. Preferences are typed values (Bool, Int, String) that can be
// safely read and written from more than one goroutine. Hook functions can
// be attached to a value to validate it before it is stored (SetHookPre())
// or to propagate a change once it has been stored (SetHookPost()).
//
// Preferences are associated with a Disk instance, which saves and loads
// values to and from a file. The format of the file is one value per line:
//
//	key :: value
//
// Keys in the file that are not known to a Disk instance are preserved when
// that Disk is saved, which means that more than one Disk instance can share
// the same file.
//
// Values can also be given on the command line using a prefs string. See
// PushCommandLineStack() for details. Command line values take priority over
// values loaded from the file.
package prefs
