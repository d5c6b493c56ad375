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


// Package hardware is the base package for the simulated Sifteo system. The
// master controller is in the mc sub-package. The cubes it talks to over the
// radio are in the cube sub-package.
//
// The remaining sub-packages are the parts shared between the two: the radio
// packet formats, the virtual clock, video memory, flash and audio.
package hardware
