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

	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/hardware/vram"
	"github.com/glocklueng/thundercracker/logger"
)

// CheckQuiescentVRAM checks that the firmware's copy of the cube's video
// memory matches the cube's actual video memory. It should be called only
// when there are no packets in flight and the firmware has nothing left to
// send to the cube.
//
// A slot without a video buffer, or a slot for which no cube can be found,
// is not checked. If the check fails and the Assertions preference is set
// then CheckQuiescentVRAM panics.
func (mc *MC) CheckQuiescentVRAM(slot Slot) error {
	if slot == nil {
		panic(curated.Errorf(NoSlot))
	}

	vbuf := slot.VideoBuffer()
	if vbuf == nil {
		return nil
	}

	hw := mc.CubeForSlot(slot)
	if hw == nil {
		return nil
	}

	tag := fmt.Sprintf("VRAM[%d]", slot.ID())
	var errors int

	// the cube's memory can only be looked at inside an event window. the
	// window does not advance time
	t := mc.ticks.Load()
	mc.sync.BeginEventAt(t, mc.running.Load())

	if vbuf.CM16 != 0 {
		logger.Logf(mc.env, tag, "changes still present in cm16, 0x%08x", vbuf.CM16)
		errors++
	}
	for i, v := range vbuf.CM1 {
		if v != 0 {
			logger.Logf(mc.env, tag, "changes still present in cm1[%d], 0x%08x", i, v)
			errors++
		}
	}

	hwMem := hw.VRAM()
	for i, b := range vbuf.Bytes {
		if i >= len(hwMem) {
			logger.Logf(mc.env, tag, "cube VRAM is only %d bytes", len(hwMem))
			errors += vram.Bytes - i
			break
		}
		if hwMem[i] != b {
			logger.Logf(mc.env, tag, "mismatch at 0x%03x, hw=%02x buf=%02x", i, hwMem[i], b)
			errors++
		}
	}

	mc.sync.EndEvent(t + TicksPerPacket)

	if errors > 0 {
		logger.Logf(mc.env, tag, "%d total errors", errors)
		err := curated.Errorf(VRAMInconsistent, slot.ID(), errors)
		if mc.env.Prefs.Assertions.Get().(bool) {
			panic(err)
		}
		return err
	}

	logger.Log(mc.env, tag, "okay!")

	return nil
}
