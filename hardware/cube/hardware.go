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

// Package cube is a simple model of the cubes on the far side of the radio
// link. It is not a cycle accurate model of the cube hardware. Each cube
// keeps a copy of its video memory, which is written to by radio packets,
// and replies to every packet it receives with an ACK.
//
// The cubes run in their own goroutine (see System) and are kept in step
// with the master controller by the Sync type.
package cube

import (
	"sync/atomic"

	"github.com/glocklueng/thundercracker/hardware/clocks"
	"github.com/glocklueng/thundercracker/hardware/radio"
	"github.com/glocklueng/thundercracker/hardware/vram"
)

// FramePeriod is the number of ticks between frames rendered by a cube.
const FramePeriod = clocks.TickHZ / 60

// battery voltage reported in the ACK of a fresh cube
const freshBattery = 0x0300

// Hardware is a single simulated cube.
type Hardware struct {
	id   int
	addr radio.Address

	vram [vram.Bytes]uint8

	// number of ticks simulated and number of frames completed in that time
	ticks  uint64
	frames uint64

	// the contents of the most recently sent full ACK. if the ACK has not
	// changed then only an empty ACK is sent
	ack      radio.Ack
	ackValid bool

	// a disconnected cube never receives packets
	connected atomic.Bool

	// number of packets received
	received int
}

// NewHardware is the preferred method of initialisation for the Hardware
// type.
func NewHardware(id int, addr radio.Address) *Hardware {
	hw := &Hardware{
		id:   id,
		addr: addr,
	}
	hw.connected.Store(true)
	return hw
}

// ID returns the cube's index in the cube set.
func (hw *Hardware) ID() int {
	return hw.id
}

// Address returns the cube's radio address.
func (hw *Hardware) Address() radio.Address {
	return hw.addr
}

// PackedRXAddr returns the address the cube is listening on.
func (hw *Hardware) PackedRXAddr() uint64 {
	return hw.addr.Pack()
}

// VRAM returns the cube's video memory.
func (hw *Hardware) VRAM() []uint8 {
	return hw.vram[:]
}

// Received returns the number of packets the cube has received.
func (hw *Hardware) Received() int {
	return hw.received
}

// SetConnected changes whether the cube can be reached over the radio.
func (hw *Hardware) SetConnected(connected bool) {
	hw.connected.Store(connected)
}

// Tick advances the cube to the specified tick.
func (hw *Hardware) Tick(to uint64) {
	if to <= hw.ticks {
		return
	}
	hw.ticks = to
	hw.frames = to / FramePeriod
}

// HandlePacket delivers a packet to the cube. It returns false if the cube
// did not receive the packet, in which case the reply is meaningless.
func (hw *Hardware) HandlePacket(p radio.Packet) (bool, radio.Packet) {
	if !hw.connected.Load() {
		return false, radio.Packet{}
	}

	hw.received++

	if addr, words, ok := radio.DecodeVRAMWrite(p); ok {
		for i, w := range words {
			a := (int(addr) + i) % vram.Words
			hw.vram[a*2] = uint8(w)
			hw.vram[a*2+1] = uint8(w >> 8)
		}
	}

	ack := hw.currentAck()
	if hw.ackValid && ack == hw.ack {
		return true, radio.Packet{}
	}
	hw.ack = ack
	hw.ackValid = true

	return true, ack.Packet()
}

func (hw *Hardware) currentAck() radio.Ack {
	ack := radio.Ack{
		FrameCount: uint8(hw.frames),
		BatteryV:   freshBattery,
	}
	ack.HWID[0] = uint8(hw.id)
	copy(ack.HWID[1:], hw.addr.ID[:])
	return ack
}
