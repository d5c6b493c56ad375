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

// Package radio defines the packets and addresses exchanged over the
// virtual radio link between the master controller and the cubes.
package radio

import (
	"fmt"
	"strings"
)

// MaxPayload is the largest number of bytes in a single radio packet.
const MaxPayload = 32

// Address is the radio address of a cube: an RF channel and a five byte
// pipe address.
type Address struct {
	Channel uint8
	ID      [5]uint8
}

// Pack returns the address as a single integer suitable for comparison. The
// pipe address occupies the low 40 bits (ID[0] in the least significant
// byte) and the channel occupies the top byte.
func (a *Address) Pack() uint64 {
	var p uint64
	for i := len(a.ID) - 1; i >= 0; i-- {
		p = (p << 8) | uint64(a.ID[i])
	}
	return p | uint64(a.Channel)<<56
}

func (a *Address) String() string {
	return fmt.Sprintf("%02d/%02x%02x%02x%02x%02x", a.Channel, a.ID[4], a.ID[3], a.ID[2], a.ID[1], a.ID[0])
}

// DefaultAddress returns the factory address for the cube with the
// specified index.
func DefaultAddress(i int) Address {
	return Address{
		Channel: uint8(0x02 + i*3),
		ID:      [5]uint8{uint8(i), 0xe7, 0xe7, 0xe7, 0xe7},
	}
}

// Packet is the payload of a single radio packet. A packet with a zero
// length is legal and meaningful. An empty ACK acknowledges reception
// without carrying any data.
type Packet struct {
	Len     int
	Payload [MaxPayload]uint8
}

// NewPacket creates a packet from a slice of bytes. Bytes beyond MaxPayload
// are dropped.
func NewPacket(b []uint8) Packet {
	var p Packet
	p.Len = copy(p.Payload[:], b)
	return p
}

// Bytes returns the valid portion of the packet's payload.
func (p *Packet) Bytes() []uint8 {
	return p.Payload[:p.Len]
}

// Nybbles formats the payload as the radio trace shows outgoing packets:
// each byte with its low nybble first, padded to the full payload width.
func (p *Packet) Nybbles() string {
	s := strings.Builder{}
	for i := range p.Payload {
		if i < p.Len {
			b := p.Payload[i]
			s.WriteString(fmt.Sprintf("%x%x", b&0xf, b>>4))
		} else {
			s.WriteString("  ")
		}
	}
	return s.String()
}

// Transmission is the packet the master controller wants to send and the
// address it is destined for. A transmission without a destination is never
// valid.
type Transmission struct {
	Dest   *Address
	Packet Packet
}
