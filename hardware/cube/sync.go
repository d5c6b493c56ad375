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
	"sync"
)

// Sync keeps the cube goroutine in step with the master controller. The
// cubes are allowed to run up to a limit set by the master controller. When
// the master controller wants to deliver a packet it opens an event window
// at a tick: it waits for the cubes to catch up with that tick and the cubes
// do not run again until the window is closed.
//
// If no cube goroutine is attached then the event window opens immediately.
type Sync struct {
	mu   sync.Mutex
	cond *sync.Cond

	// the number of ticks the cubes have been simulated for and the tick
	// they are allowed to run up to
	cubeTicks uint64
	limit     uint64

	// an event window is open
	inEvent bool

	// the cube goroutine is running the cubes between a grant() and the
	// following advance()
	granted bool

	attached bool
	quit     bool
}

// NewSync is the preferred method of initialisation for the Sync type.
func NewSync() *Sync {
	s := &Sync{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// BeginEventAt opens an event window at the specified tick. The cubes are
// allowed to run up to the tick and BeginEventAt returns once they have done
// so. If stillRunning is false the cubes are not waited for, other than to
// finish any run that is already in progress.
func (s *Sync) BeginEventAt(tick uint64, stillRunning bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tick > s.limit {
		s.limit = tick
	}
	s.cond.Broadcast()

	for s.granted || (stillRunning && s.attached && !s.quit && s.cubeTicks < s.limit) {
		s.cond.Wait()
	}

	s.inEvent = true
}

// EndEvent closes the event window and allows the cubes to run up to the
// specified tick.
func (s *Sync) EndEvent(tick uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inEvent = false
	if tick > s.limit {
		s.limit = tick
	}
	s.cond.Broadcast()
}

// Wake any goroutine waiting on the Sync.
func (s *Sync) Wake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cond.Broadcast()
}

// Clocks returns the number of ticks the cubes have been simulated for.
func (s *Sync) Clocks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cubeTicks
}

// InEvent returns true if an event window is currently open.
func (s *Sync) InEvent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inEvent
}

// attach is called by the cube goroutine when it starts
func (s *Sync) attach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = true
	s.quit = false
}

// detach is called when the cube goroutine is asked to end
func (s *Sync) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quit = true
	s.cond.Broadcast()
}

// grant blocks until the cubes are allowed to run. It returns the range of
// ticks to run. The ok return value is false if the cube goroutine should
// end.
func (s *Sync) grant() (from uint64, to uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.quit && (s.inEvent || s.cubeTicks >= s.limit) {
		s.cond.Wait()
	}
	if s.quit {
		s.attached = false
		return 0, 0, false
	}

	s.granted = true
	return s.cubeTicks, s.limit, true
}

// advance records that the cubes have run up to the tick
func (s *Sync) advance(tick uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cubeTicks = tick
	s.granted = false
	s.cond.Broadcast()
}
