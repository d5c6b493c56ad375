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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes (and sub-modes) and allows a different set
// of flags for each mode.
//
// Unlike flag.FlagSet, the arguments are given with NewArgs() and Parse() is
// called without arguments. This allows the same argument list to be parsed
// in layers, one mode at a time:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "INSTALL", "VERSION")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		cubes := md.AddInt("cubes", 3, "number of cubes")
//		...
//	}
//
// The first sub-mode is the default and is selected if the first argument is
// not a recognised mode. Mode comparisons are case insensitive and Mode()
// always returns the upper case version.
//
// Flags that correspond directly to a preference can be added with AddPref().
// After parsing, CommandLinePrefs() returns the preferences that were set on
// the command line in the form expected by prefs.PushCommandLineStack().
package modalflag
