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

// Package mc drives the simulation of the master controller. The firmware
// runs in its own goroutine (the simulation goroutine) and communicates with
// the simulated cubes over a virtual radio link.
//
// Time in the simulation is virtual. Every radio packet delivery attempt
// advances the master controller's clock by exactly TicksPerPacket ticks.
// The cubes run in a separate goroutine and the two goroutines meet only at
// the start of each delivery attempt (see the Sync interface).
//
// Stopping the simulation is cooperative. Once Stop() has been called, the
// next call to Halt() from the firmware returns the StopRequested error. The
// firmware (and any loader running it) must return that error as quickly as
// possible. The simulation goroutine ends when the error reaches it.
package mc
