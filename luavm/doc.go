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

// Package luavm runs master controller firmware written in Lua. The firmware
// is read from flash, through the block cache, and executed with a small API
// for driving the cubes:
//
//	ENTRY               the entry parameter given to the loader
//	cubes()             the number of cube slots
//	attach(slot)        create a video buffer for the slot
//	poke(slot, w, v)    write value v to word w of the slot's video buffer
//	fill(slot, v)       write value v to every word of the video buffer
//	peek(slot, w)       read word w of the video buffer
//	yield()             perform one radio transaction
//	finish(slot)        yield until the video buffer has been sent to the
//	                    cube and then check that the cube agrees with it
//	ticks()             system time in nanoseconds
//	log(msg)            add msg to the log
//	tone(hz)            set the frequency of the audio tone. zero is silence
//
// If the firmware defines a global function called task() it is called
// whenever the master controller services its task queue.
//
// The Runtime is also the firmware's radio stack. Changes to video buffers
// are sent to the cubes as VRAM write packets.
package luavm
