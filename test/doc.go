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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions compare two values
// of the same comparable type. ExpectSuccess() and ExpectFailure() work on
// bool and error values, and on nil.
//
// The Demand*() variants fail the test immediately rather than letting it
// continue. They should be used when later parts of a test depend on the
// value being correct.
//
// CompareWriter is an io.Writer that records everything written to it. It
// is useful for testing functions that output to a writer, like the logger.
package test
