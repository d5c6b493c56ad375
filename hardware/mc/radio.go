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
	"fmt"
	"strings"

	"github.com/glocklueng/thundercracker/assert"
	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/hardware/clocks"
	"github.com/glocklueng/thundercracker/hardware/radio"
	"github.com/glocklueng/thundercracker/logger"
)

// Contract violations. These are raised as panics.
const (
	NoDestination    = "mc: radio transmission has no destination"
	WrongGoroutine   = "mc: halt called from goroutine %d (simulation goroutine is %d)"
	NoSlot           = "mc: nil cube slot"
	VRAMInconsistent = "mc: VRAM[%d]: %d errors"
)

// Halt implements the Host interface. It returns the StopRequested error if
// Stop() has been called. Otherwise, a single radio transaction is performed.
//
// Halt must only be called from the simulation goroutine.
func (mc *MC) Halt() error {
	if !mc.running.Load() {
		return curated.Errorf(StopRequested)
	}

	if mc.env.Prefs.Assertions.Get().(bool) {
		if id := assert.GetGoRoutineID(); id != mc.goroutineID.Load() {
			panic(curated.Errorf(WrongGoroutine, id, mc.goroutineID.Load()))
		}
	}

	return mc.doRadioPacket()
}

// doRadioPacket asks the firmware for a packet and tries to deliver it to a
// cube. The outcome is reported back to the firmware's radio stack unless the
// simulation is stopped while the transaction is in progress.
func (mc *MC) doRadioPacket() error {
	var tx radio.Transmission
	mc.radio.Produce(&tx)
	if tx.Dest == nil {
		panic(curated.Errorf(NoDestination))
	}

	retries := mc.env.Prefs.MaxRetries.Get().(int)
	trace := mc.env.Prefs.RadioTrace.Get().(bool)

	for retry := range retries {
		if !mc.running.Load() {
			return curated.Errorf(StopRequested)
		}

		// interaction with the cubes must happen between beginPacket() and
		// endPacket() only
		mc.beginPacket()

		// the MC may have been stopped while waiting for the cubes, in which
		// case the cubes have not been brought up to date
		if !mc.running.Load() {
			mc.endPacket()
			return curated.Errorf(StopRequested)
		}

		var ack bool
		var reply radio.Packet
		cube := mc.CubeForAddress(tx.Dest)
		if cube != nil {
			ack, reply = cube.HandlePacket(tx.Packet)
		}
		mc.endPacket()

		if trace {
			mc.trace(&tx, cube, ack, reply, retry)
		}

		if ack {
			if reply.Len > 0 {
				mc.radio.AckWithPacket(reply)
			} else {
				mc.radio.AckEmpty()
			}
			return nil
		}
	}

	mc.radio.Timeout()

	return nil
}

// beginPacket advances time and meets with the cube goroutine at the new
// time
func (mc *MC) beginPacket() {
	t := mc.ticks.Add(TicksPerPacket)
	mc.sync.BeginEventAt(t, mc.running.Load())
}

// endPacket lets the cubes run, but no further than the next transmit
// opportunity
func (mc *MC) endPacket() {
	mc.sync.EndEvent(mc.ticks.Load() + TicksPerPacket)
}

func (mc *MC) trace(tx *radio.Transmission, cube Peripheral, ack bool, reply radio.Packet, retry int) {
	s := strings.Builder{}

	s.WriteString(fmt.Sprintf("%6dms %s -- TX[%2d] ",
		clocks.FromTicks(mc.ticks.Load()).Milliseconds(),
		tx.Dest.String(), tx.Packet.Len))
	s.WriteString(tx.Packet.Nybbles())

	if ack {
		s.WriteString(fmt.Sprintf(" -- Cube %d: ACK[%2d] ", cube.ID(), reply.Len))
		s.WriteString(radio.FormatAck(reply))
	} else {
		s.WriteString(fmt.Sprintf(" -- TIMEOUT, retry #%d", retry))
	}

	logger.Log(mc.env, "RADIO", s.String())
}
