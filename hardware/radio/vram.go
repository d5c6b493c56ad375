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

// VRAM write packets carry a run of 16-bit words for the cube's video
// memory. The first two bytes are the header:
//
//	byte 0: 0x80 | bit 8 of the word address
//	byte 1: bits 0-7 of the word address
//
// The remaining bytes are the words in little-endian order.
const (
	vramWriteFlag   = 0x80
	vramWriteHeader = 2

	// MaxVRAMWords is the largest number of words in a single VRAM write
	// packet
	MaxVRAMWords = (MaxPayload - vramWriteHeader) / 2
)

// EncodeVRAMWrite creates a packet that writes the words to the cube's VRAM
// starting at word address addr. Words beyond MaxVRAMWords are dropped.
func EncodeVRAMWrite(addr uint16, words []uint16) Packet {
	if len(words) > MaxVRAMWords {
		words = words[:MaxVRAMWords]
	}

	var p Packet
	p.Payload[0] = vramWriteFlag | uint8(addr>>8)&0x01
	p.Payload[1] = uint8(addr)
	for i, w := range words {
		p.Payload[vramWriteHeader+i*2] = uint8(w)
		p.Payload[vramWriteHeader+i*2+1] = uint8(w >> 8)
	}
	p.Len = vramWriteHeader + len(words)*2
	return p
}

// DecodeVRAMWrite returns the word address and words of a VRAM write
// packet. The ok return value is false if the packet is not a VRAM write.
func DecodeVRAMWrite(p Packet) (addr uint16, words []uint16, ok bool) {
	if p.Len < vramWriteHeader || p.Payload[0]&vramWriteFlag == 0 {
		return 0, nil, false
	}

	addr = uint16(p.Payload[0]&0x01)<<8 | uint16(p.Payload[1])
	n := (p.Len - vramWriteHeader) / 2
	words = make([]uint16, n)
	for i := range words {
		words[i] = uint16(p.Payload[vramWriteHeader+i*2]) | uint16(p.Payload[vramWriteHeader+i*2+1])<<8
	}

	return addr, words, true
}
