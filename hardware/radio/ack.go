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

package radio

import (
	"fmt"
	"strings"
)

// Offsets of the segments in a full cube ACK packet. Each value is the
// length of an ACK truncated after that segment.
const (
	AckLenFrame     = 1
	AckLenAccel     = 4
	AckLenNeighbor  = 8
	AckLenFlashFIFO = 9
	AckLenBatteryV  = 11
	AckLenHWID      = 19
	AckLenFull      = AckLenHWID
)

// Ack is the decoded content of a full ACK packet.
type Ack struct {
	FrameCount     uint8
	Accel          [3]int8
	Neighbors      [4]uint8
	FlashFIFOBytes uint8
	BatteryV       uint16
	HWID           [8]uint8
}

// Packet encodes the ACK.
func (a Ack) Packet() Packet {
	var p Packet
	p.Payload[0] = a.FrameCount
	for i, v := range a.Accel {
		p.Payload[AckLenFrame+i] = uint8(v)
	}
	copy(p.Payload[AckLenAccel:], a.Neighbors[:])
	p.Payload[AckLenNeighbor] = a.FlashFIFOBytes
	p.Payload[AckLenFlashFIFO] = uint8(a.BatteryV)
	p.Payload[AckLenFlashFIFO+1] = uint8(a.BatteryV >> 8)
	copy(p.Payload[AckLenBatteryV:], a.HWID[:])
	p.Len = AckLenFull
	return p
}

// FormatAck formats the reply payload as the radio trace shows it: hex
// bytes with a dash at the start of each ACK segment.
func FormatAck(p Packet) string {
	s := strings.Builder{}
	for i := 0; i < p.Len; i++ {
		switch i {
		case AckLenFrame, AckLenAccel, AckLenNeighbor, AckLenFlashFIFO, AckLenBatteryV, AckLenHWID:
			s.WriteString("-")
		}
		s.WriteString(fmt.Sprintf("%02x", p.Payload[i]))
	}
	return s.String()
}
