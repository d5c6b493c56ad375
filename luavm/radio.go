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
)

// the transmission waiting for an outcome
type inflight struct {
	slot  *Slot
	word  int
	words int
}

// Produce implements the mc.RadioManager interface. Pending changes to the
// video buffers are sent in round-robin order. If there is nothing to send
// then the next slot is sent an empty packet.
func (rt *Runtime) Produce(tx *radio.Transmission) {
	n := len(rt.slots)

	for i := range n {
		idx := (rt.next + i) % n
		s := rt.slots[idx]
		if s.buf == nil || !s.buf.Pending() {
			continue
		}

		word, words, ok := s.buf.NextRun(radio.MaxVRAMWords)
		if !ok {
			continue
		}
		s.buf.Clear(word, len(words))

		tx.Dest = &s.addr
		tx.Packet = radio.EncodeVRAMWrite(uint16(word), words)
		rt.inflight = inflight{slot: s, word: word, words: len(words)}
		rt.next = (idx + 1) % n
		return
	}

	s := rt.slots[rt.next]
	rt.next = (rt.next + 1) % n

	tx.Dest = &s.addr
	tx.Packet = radio.Packet{}
	rt.inflight = inflight{slot: s}
}

// AckWithPacket implements the mc.RadioManager interface.
func (rt *Runtime) AckWithPacket(reply radio.Packet) {
	if rt.inflight.slot == nil {
		return
	}
	rt.inflight.slot.Acks++
	if reply.Len >= radio.AckLenFrame {
		rt.inflight.slot.FrameCount = reply.Payload[0]
	}
	rt.inflight = inflight{}
}

// AckEmpty implements the mc.RadioManager interface.
func (rt *Runtime) AckEmpty() {
	if rt.inflight.slot == nil {
		return
	}
	rt.inflight.slot.Acks++
	rt.inflight = inflight{}
}

// Timeout implements the mc.RadioManager interface. Any video memory that
// was in the packet is marked to be sent again.
func (rt *Runtime) Timeout() {
	s := rt.inflight.slot
	if s == nil {
		return
	}
	s.Timeouts++
	rt.requeue()
}

// requeue marks any video memory in the transmission to be sent again and
// forgets the transmission
func (rt *Runtime) requeue() {
	s := rt.inflight.slot
	if s != nil && rt.inflight.words > 0 && s.buf != nil {
		s.buf.Mark(rt.inflight.word, rt.inflight.words)
	}
	rt.inflight = inflight{}
}
