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

package flash

import (
	"fmt"

	"github.com/glocklueng/thundercracker/environment"
	"github.com/glocklueng/thundercracker/logger"
)

// sizes of the block cache
const (
	BlockSize = 256
	NumBlocks = 16
)

// Stats collected by the block cache.
type Stats struct {
	Hits          int
	Misses        int
	Invalidations int
}

func (s Stats) String() string {
	total := s.Hits + s.Misses
	if total == 0 {
		return fmt.Sprintf("no accesses, %d invalidations", s.Invalidations)
	}
	return fmt.Sprintf("%d hits, %d misses (%.1f%% hit rate), %d invalidations",
		s.Hits, s.Misses, float64(s.Hits)*100/float64(total), s.Invalidations)
}

type block struct {
	valid bool
	addr  uint32
	data  [BlockSize]uint8
}

// BlockCache caches blocks of the flash device. The firmware only ever reads
// flash through the cache, so the cache must be invalidated whenever the
// flash is written to by anything else.
type BlockCache struct {
	env *environment.Environment
	dev *Device

	blocks [NumBlocks]block

	// the next block to be evicted
	next int

	stats        Stats
	statsEnabled bool
}

// NewBlockCache is the preferred method of initialisation for the BlockCache
// type.
func NewBlockCache(env *environment.Environment, dev *Device) *BlockCache {
	return &BlockCache{
		env: env,
		dev: dev,
	}
}

// Size returns the size of the flash device behind the cache.
func (bc *BlockCache) Size() int {
	return bc.dev.Size()
}

// EnableStats turns on the collection of statistics.
func (bc *BlockCache) EnableStats() {
	bc.statsEnabled = true
}

// Stats returns the statistics collected so far. Statistics are only
// collected if EnableStats() has been called.
func (bc *BlockCache) Stats() Stats {
	return bc.stats
}

// LogStats writes the current statistics to the log.
func (bc *BlockCache) LogStats() {
	if bc.statsEnabled {
		logger.Log(bc.env, "flash", bc.stats)
	}
}

// Invalidate discards every block in the cache.
func (bc *BlockCache) Invalidate() {
	for i := range bc.blocks {
		bc.blocks[i].valid = false
	}
	bc.next = 0
	if bc.statsEnabled {
		bc.stats.Invalidations++
	}
}

func (bc *BlockCache) get(addr uint32) (*block, error) {
	addr &^= BlockSize - 1

	for i := range bc.blocks {
		b := &bc.blocks[i]
		if b.valid && b.addr == addr {
			if bc.statsEnabled {
				bc.stats.Hits++
			}
			return b, nil
		}
	}

	if bc.statsEnabled {
		bc.stats.Misses++
	}

	b := &bc.blocks[bc.next]
	bc.next = (bc.next + 1) % NumBlocks

	// a block that runs off the end of the device is filled with erased
	// bytes
	b.valid = false
	for i := range b.data {
		b.data[i] = 0xff
	}
	n := min(BlockSize, bc.dev.Size()-int(addr))
	if n <= 0 {
		return nil, bc.dev.check(addr, 1)
	}
	if err := bc.dev.Read(addr, b.data[:n]); err != nil {
		return nil, err
	}
	b.addr = addr
	b.valid = true

	return b, nil
}

// Read len(data) bytes starting at addr through the cache.
func (bc *BlockCache) Read(addr uint32, data []uint8) error {
	if err := bc.dev.check(addr, len(data)); err != nil {
		return err
	}

	for len(data) > 0 {
		b, err := bc.get(addr)
		if err != nil {
			return err
		}
		o := int(addr - b.addr)
		n := copy(data, b.data[o:])
		data = data[n:]
		addr += uint32(n)
	}

	return nil
}
