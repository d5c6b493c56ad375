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

package mc

import (
	"github.com/glocklueng/thundercracker/hardware/radio"
)

// CubeForAddress returns the cube listening on the radio address. Only the
// first NumCubes cubes (see preferences) are considered. Returns nil if no
// cube is listening on the address.
func (mc *MC) CubeForAddress(addr *radio.Address) Peripheral {
	packed := addr.Pack()

	n := min(len(mc.cubes), mc.env.Prefs.NumCubes.Get().(int))
	for _, c := range mc.cubes[:n] {
		if c.PackedRXAddr() == packed {
			return c
		}
	}

	return nil
}

// CubeForSlot returns the cube for the slot's radio address.
func (mc *MC) CubeForSlot(slot Slot) Peripheral {
	return mc.CubeForAddress(slot.RadioAddress())
}
