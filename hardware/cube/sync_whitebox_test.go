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
	"testing"
	"time"

	"github.com/glocklueng/thundercracker/test"
)

func TestEventWaitsForGrant(t *testing.T) {
	s := NewSync()
	s.attach()

	// the cube goroutine has been allowed to run to tick 1000 and is
	// running
	s.EndEvent(1000)
	_, to, ok := s.grant()
	test.DemandSuccess(t, ok)
	test.DemandEquality(t, to, uint64(1000))

	opened := make(chan bool, 1)
	go func() {
		// the MC has been stopped. the window must still wait for the run in
		// progress
		s.BeginEventAt(2000, false)
		opened <- true
	}()

	select {
	case <-opened:
		t.Fatalf("event window opened while the cubes were running")
	case <-time.After(50 * time.Millisecond):
	}

	s.advance(to)

	select {
	case <-opened:
	case <-time.After(5 * time.Second):
		t.Fatalf("event window did not open")
	}
	test.ExpectSuccess(t, s.InEvent())
	test.ExpectEquality(t, s.Clocks(), uint64(1000))

	// a detached goroutine is not granted another run
	s.EndEvent(3000)
	s.detach()
	_, _, ok = s.grant()
	test.ExpectFailure(t, ok)
}
