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

// Package curated is a helper package for the plain Go language error type.
// Curated errors remember the pattern they were created with, which makes
// it possible to test for a specific class of error without resorting to
// string comparison of the formatted message:
//
//	const NotFound = "store: %s not found"
//
//	func Find(key string) error {
//		return curated.Errorf(NotFound, key)
//	}
//
//	if curated.Is(err, NotFound) {
//		...
//	}
//
// The Has() function searches the chain of wrapped curated errors (those
// passed as values to Errorf()) for the pattern.
//
// Error messages are de-duplicated when printed. An error created with
//
//	curated.Errorf("flash: %v", curated.Errorf("flash: out of range"))
//
// prints as "flash: out of range" and not "flash: flash: out of range".
// Chains are thought of as parts separated by the sub-string ": ".
//
// Patterns that are intended to be tested for should be stored as exported
// string constants in the package that creates them.
package curated
