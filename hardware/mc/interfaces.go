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
	"github.com/glocklueng/thundercracker/hardware/clocks"
	"github.com/glocklueng/thundercracker/hardware/radio"
	"github.com/glocklueng/thundercracker/hardware/vram"
)

// RadioManager is the firmware's radio stack. It produces the packets to be
// sent and is told of the outcome of each transaction.
type RadioManager interface {
	// Produce fills in the transmission. The destination must be set
	Produce(tx *radio.Transmission)

	// exactly one of the following is called for each transmission
	AckWithPacket(reply radio.Packet)
	AckEmpty()
	Timeout()
}

// Peripheral is the master controller's view of a simulated cube.
type Peripheral interface {
	ID() int
	PackedRXAddr() uint64

	// HandlePacket delivers a packet to the cube. The boolean return value
	// is true if the packet was acknowledged. A zero length reply is an
	// empty acknowledgement
	HandlePacket(p radio.Packet) (bool, radio.Packet)

	// the cube's video memory. should be vram.Bytes in length
	VRAM() []uint8
}

// Sync is the rendezvous between the simulation goroutine and the cube
// goroutine. Interaction with a Peripheral must only happen between a call
// to BeginEventAt() and EndEvent().
type Sync interface {
	// wait for the cubes to reach the tick. if stillRunning is false the
	// implementation should not wait for the cubes
	BeginEventAt(tick uint64, stillRunning bool)

	// allow the cubes to run up to but no further than tick
	EndEvent(tick uint64)

	// wake any goroutine waiting on the sync
	Wake()

	// number of ticks the cubes have been simulated for
	Clocks() uint64
}

// Host is the part of the master controller visible to the firmware.
type Host interface {
	// Halt performs one radio transaction. It returns the StopRequested
	// error if the simulation is being stopped
	Halt() error

	// Ticks returns the current system time
	Ticks() clocks.Ticks
}

// Loader runs the firmware. Run should only return when the firmware exits
// or when Halt() returns an error.
type Loader interface {
	Run(host Host, param int) error
}

// Tasks is the firmware's deferred work queue. It is serviced after the
// firmware has exited.
type Tasks interface {
	Work()
}

// AudioOut is the master controller's audio output.
type AudioOut interface {
	Start() error
}

// FlashDevice is the master controller's flash memory.
type FlashDevice interface {
	ChipErase()
	Write(addr uint32, data []uint8) error
}

// BlockCache caches the contents of the FlashDevice.
type BlockCache interface {
	Invalidate()
}

// Slot is the firmware's record of a cube.
type Slot interface {
	ID() int
	RadioAddress() *radio.Address

	// the firmware's copy of the cube's video memory. can be nil
	VideoBuffer() *vram.Buffer
}

// Tracer is implemented by loaders that can trace execution of the firmware.
type Tracer interface {
	EnableTracing()
}

// StackMonitor is implemented by loaders that can monitor the firmware's
// stack usage.
type StackMonitor interface {
	EnableStackMonitoring()
}

// StatsEnabler is implemented by block caches that can collect statistics.
type StatsEnabler interface {
	EnableStats()
}
