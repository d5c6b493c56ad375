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

package cube

import (
	"github.com/glocklueng/thundercracker/hardware/radio"
)

// System is the set of cubes and the goroutine that runs them.
type System struct {
	Sync  *Sync
	Cubes []*Hardware

	done chan struct{}
}

// NewSystem creates a set of n cubes with their default radio addresses.
func NewSystem(n int) *System {
	sys := &System{
		Sync: NewSync(),
	}
	for i := range n {
		sys.Cubes = append(sys.Cubes, NewHardware(i, radio.DefaultAddress(i)))
	}
	return sys
}

// Start the cube goroutine. Has no effect if the goroutine is already
// running.
func (sys *System) Start() {
	if sys.done != nil {
		return
	}
	sys.done = make(chan struct{})
	sys.Sync.attach()

	go func() {
		defer close(sys.done)
		for {
			_, to, ok := sys.Sync.grant()
			if !ok {
				return
			}
			for _, c := range sys.Cubes {
				c.Tick(to)
			}
			sys.Sync.advance(to)
		}
	}()
}

// Stop the cube goroutine and wait for it to end.
func (sys *System) Stop() {
	if sys.done == nil {
		return
	}
	sys.Sync.detach()
	<-sys.done
	sys.done = nil
}
