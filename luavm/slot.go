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

package luavm

import (
	"github.com/glocklueng/thundercracker/hardware/radio"
	"github.com/glocklueng/thundercracker/hardware/vram"
)

// Slot is the firmware's record of a cube. It implements the mc.Slot
// interface.
type Slot struct {
	id   int
	addr radio.Address

	// nil until the firmware attaches to the slot
	buf *vram.Buffer

	// outcome of radio transactions with the slot's cube
	Acks     int
	Timeouts int

	// the frame count from the most recent full ACK
	FrameCount uint8
}

// ID implements the mc.Slot interface.
func (s *Slot) ID() int {
	return s.id
}

// RadioAddress implements the mc.Slot interface.
func (s *Slot) RadioAddress() *radio.Address {
	return &s.addr
}

// VideoBuffer implements the mc.Slot interface.
func (s *Slot) VideoBuffer() *vram.Buffer {
	return s.buf
}
