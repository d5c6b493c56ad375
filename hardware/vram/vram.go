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

// Package vram implements the firmware's shadow copy of a cube's video
// memory. Changes to the shadow are tracked in two change maps so that the
// radio stack can find the words that still need to be sent to the cube.
//
// CM1 has one bit per word. Bit j of CM1[i] corresponds to word (32*i)+j.
// CM16 has one bit per group of sixteen words. Bit k is set if any word in
// the range 16k to 16k+15 is waiting to be sent.
//
// The buffer is only ever accessed by the simulation goroutine.
package vram

// sizes of video memory
const (
	Bytes = 1024
	Words = Bytes / 2
)

// Buffer is the firmware's view of a cube's video memory.
type Buffer struct {
	CM16  uint32
	CM1   [16]uint32
	Bytes [Bytes]uint8
}

// Peek returns the word at the word address. Addresses wrap around.
func (b *Buffer) Peek(word int) uint16 {
	word %= Words
	return uint16(b.Bytes[word*2]) | uint16(b.Bytes[word*2+1])<<8
}

// Poke writes value to the word address. The word is only marked as
// changed if the value differs from what is already in the buffer.
func (b *Buffer) Poke(word int, value uint16) {
	word %= Words
	if b.Peek(word) == value {
		return
	}
	b.Bytes[word*2] = uint8(value)
	b.Bytes[word*2+1] = uint8(value >> 8)
	b.Mark(word, 1)
}

// Fill writes value to every word in the buffer.
func (b *Buffer) Fill(value uint16) {
	for w := range Words {
		b.Poke(w, value)
	}
}

// Pending returns true if any word is waiting to be sent.
func (b *Buffer) Pending() bool {
	return b.CM16 != 0
}

// Mark n words starting at word as changed.
func (b *Buffer) Mark(word int, n int) {
	for i := word; i < word+n && i < Words; i++ {
		b.CM1[i>>5] |= 1 << (i & 31)
		b.CM16 |= 1 << (i >> 4)
	}
}

// Clear the change bits for n words starting at word.
func (b *Buffer) Clear(word int, n int) {
	for i := word; i < word+n && i < Words; i++ {
		b.CM1[i>>5] &^= 1 << (i & 31)
	}

	// recalculate the CM16 bits covering the cleared range
	for k := word >> 4; k <= (word+n-1)>>4 && k < 32; k++ {
		half := b.CM1[k>>1] >> ((k & 1) * 16) & 0xffff
		if half == 0 {
			b.CM16 &^= 1 << k
		}
	}
}

// NextRun finds the first changed word and returns it along with the run
// of contiguous changed words that follow it, up to a maximum of max words.
// The change bits are not cleared. The ok return value is false if there
// are no pending changes.
func (b *Buffer) NextRun(max int) (word int, words []uint16, ok bool) {
	if b.CM16 == 0 || max <= 0 {
		return 0, nil, false
	}

	// CM16 tells us which group of sixteen words to start looking in
	var k int
	for k = 0; k < 32; k++ {
		if b.CM16&(1<<k) != 0 {
			break
		}
	}

	word = -1
	for i := k * 16; i < Words; i++ {
		if b.CM1[i>>5]&(1<<(i&31)) != 0 {
			word = i
			break
		}
	}

	// CM16 claimed a change but CM1 disagrees. this shouldn't happen
	if word == -1 {
		b.CM16 = 0
		return 0, nil, false
	}

	for i := word; i < Words && len(words) < max; i++ {
		if b.CM1[i>>5]&(1<<(i&31)) == 0 {
			break
		}
		words = append(words, b.Peek(i))
	}

	return word, words, true
}
