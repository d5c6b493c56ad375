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

package cube_test

import (
	"testing"

	"github.com/glocklueng/thundercracker/hardware/cube"
	"github.com/glocklueng/thundercracker/hardware/radio"
	"github.com/glocklueng/thundercracker/test"
)

func TestHandlePacket(t *testing.T) {
	hw := cube.NewHardware(1, radio.DefaultAddress(1))
	test.ExpectEquality(t, hw.ID(), 1)
	a := radio.DefaultAddress(1)
	test.ExpectEquality(t, hw.PackedRXAddr(), a.Pack())

	// first reply is always a full ACK
	ok, reply := hw.HandlePacket(radio.EncodeVRAMWrite(3, []uint16{0xaabb, 0xccdd}))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, reply.Len, radio.AckLenFull)
	test.ExpectEquality(t, hw.VRAM()[6], uint8(0xbb))
	test.ExpectEquality(t, hw.VRAM()[7], uint8(0xaa))
	test.ExpectEquality(t, hw.VRAM()[9], uint8(0xcc))

	// nothing has changed so the next reply is empty
	ok, reply = hw.HandlePacket(radio.Packet{})
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, reply.Len, 0)

	// a new frame changes the ACK
	hw.Tick(cube.FramePeriod)
	ok, reply = hw.HandlePacket(radio.Packet{})
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, reply.Len, radio.AckLenFull)
	test.ExpectEquality(t, reply.Payload[0], uint8(1))

	// time does not go backwards
	hw.Tick(0)
	_, reply = hw.HandlePacket(radio.Packet{})
	test.ExpectEquality(t, reply.Len, 0)

	hw.SetConnected(false)
	ok, _ = hw.HandlePacket(radio.EncodeVRAMWrite(0, []uint16{0xffff}))
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, hw.VRAM()[0], uint8(0))
	test.ExpectEquality(t, hw.Received(), 4)
}

func TestSyncDetached(t *testing.T) {
	s := cube.NewSync()

	// no cube goroutine so the window opens immediately
	s.BeginEventAt(1000, true)
	test.ExpectSuccess(t, s.InEvent())
	s.EndEvent(2000)
	test.ExpectFailure(t, s.InEvent())
	test.ExpectEquality(t, s.Clocks(), uint64(0))
	s.Wake()
}

func TestSystem(t *testing.T) {
	sys := cube.NewSystem(3)
	test.DemandEquality(t, len(sys.Cubes), 3)

	sys.Start()
	defer sys.Stop()

	sys.Sync.BeginEventAt(1000, true)
	test.ExpectEquality(t, sys.Sync.Clocks(), uint64(1000))
	test.ExpectSuccess(t, sys.Sync.InEvent())
	sys.Sync.EndEvent(cube.FramePeriod * 2)

	// opening the window at a tick waits for everything that has been
	// granted to the cubes
	sys.Sync.BeginEventAt(cube.FramePeriod, true)
	test.ExpectEquality(t, sys.Sync.Clocks(), uint64(cube.FramePeriod*2))
	_, reply := sys.Cubes[2].HandlePacket(radio.Packet{})
	test.ExpectEquality(t, reply.Payload[0], uint8(2))
	sys.Sync.EndEvent(cube.FramePeriod * 2)

	sys.Stop()

	// cubes no longer run
	sys.Sync.BeginEventAt(cube.FramePeriod*10, true)
	sys.Sync.EndEvent(cube.FramePeriod * 11)
	test.ExpectEquality(t, sys.Sync.Clocks(), uint64(cube.FramePeriod*2))

	// and can be restarted
	sys.Start()
	sys.Sync.BeginEventAt(cube.FramePeriod*12, true)
	test.ExpectEquality(t, sys.Sync.Clocks(), uint64(cube.FramePeriod*12))
	sys.Sync.EndEvent(cube.FramePeriod * 12)
}
