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

package clocks_test

import (
	"math"
	"testing"

	"github.com/glocklueng/thundercracker/hardware/clocks"
	"github.com/glocklueng/thundercracker/test"
)

func TestConversions(t *testing.T) {
	test.ExpectEquality(t, clocks.HzTicks(clocks.TickHZ/16), clocks.Ticks(1000))
	test.ExpectEquality(t, clocks.MsTicks(1), clocks.Ticks(1000000))
	test.ExpectEquality(t, clocks.UsTicks(450), clocks.Ticks(450000))
}

func TestFromTicks(t *testing.T) {
	test.ExpectEquality(t, clocks.FromTicks(0), clocks.Ticks(0))

	// one tick is 62.5ns. the fractional part is lost
	test.ExpectEquality(t, clocks.FromTicks(1), clocks.Ticks(62))
	test.ExpectEquality(t, clocks.FromTicks(2), clocks.Ticks(125))

	// one second of ticks
	test.ExpectEquality(t, clocks.FromTicks(clocks.TickHZ), clocks.Ticks(1000000000))
	test.ExpectEquality(t, clocks.FromTicks(clocks.TickHZ).Milliseconds(), int64(1000))

	// 7200 ticks is 450us
	test.ExpectEquality(t, clocks.FromTicks(7200), clocks.UsTicks(450))
}

func TestLongRuns(t *testing.T) {
	// no precision is lost for tick counts up to the largest value that can
	// be multiplied by the nanosecond ratio without overflowing
	limit := uint64(math.MaxUint64) / uint64(clocks.HzTicks(clocks.TickHZ/16))
	limit &^= 0xf
	test.ExpectEquality(t, uint64(clocks.FromTicks(limit)), limit/16*1000)

	// one year of simulated time
	year := uint64(clocks.TickHZ) * 60 * 60 * 24 * 365
	test.ExpectEquality(t, clocks.FromTicks(year), clocks.Ticks(365*24*60*60)*clocks.MsTicks(1000))
}
