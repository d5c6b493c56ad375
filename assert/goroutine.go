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

// Package assert contains helper functions for checking the run-time
// contracts of the simulation.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns the ID of the goroutine that calls the function.
// Useful for asserting that a function is only ever called from a specific
// goroutine.
//
// Expensive. Only use it when assertions have been requested.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}
