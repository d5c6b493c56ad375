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

// Package clocks defines the virtual clock of the master controller
// simulation and converts between ticks and system time.
//
// The simulation counts time in ticks of the TickHZ clock. System time, as
// seen by the firmware, is measured in nanoseconds. Because TickHZ divides
// easily into nanoseconds (62.5ns at 16MHz) the conversion is performed with
// 64-bit integer arithmetic in 60.4 fixed-point.
package clocks

// TickHZ is the frequency of the simulation clock.
const TickHZ = 16000000

// Ticks is a duration or timestamp in nanoseconds of system time.
type Ticks int64

// HzTicks returns the period, in nanoseconds, of the given frequency.
func HzTicks(hz int64) Ticks {
	return Ticks(1000000000 / hz)
}

// MsTicks returns the number of nanoseconds in the given number of
// milliseconds.
func MsTicks(ms int64) Ticks {
	return Ticks(ms * 1000000)
}

// UsTicks returns the number of nanoseconds in the given number of
// microseconds.
func UsTicks(us int64) Ticks {
	return Ticks(us * 1000)
}

// FromTicks converts a count of TickHZ ticks into system time.
func FromTicks(t uint64) Ticks {
	return Ticks((t * uint64(HzTicks(TickHZ/16))) >> 4)
}

// Milliseconds returns the system time as a whole number of milliseconds.
func (t Ticks) Milliseconds() int64 {
	return int64(t / MsTicks(1))
}
