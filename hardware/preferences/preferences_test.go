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

package preferences_test

import (
	"testing"

	"github.com/glocklueng/thundercracker/hardware/preferences"
	"github.com/glocklueng/thundercracker/prefs"
	"github.com/glocklueng/thundercracker/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewDetachedPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.NumCubes.Get().(int), 3)
	test.ExpectEquality(t, p.EntryParam.Get().(int), 111)
	test.ExpectEquality(t, p.MaxRetries.Get().(int), 150)
	test.ExpectEquality(t, p.RadioTrace.Get().(bool), false)
	test.ExpectEquality(t, p.Assertions.Get().(bool), true)

	// saving detached preferences does nothing and is not an error
	test.ExpectSuccess(t, p.Save())
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewDetachedPreferences()
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.NumCubes.Set(0))
	test.ExpectFailure(t, p.NumCubes.Set(preferences.MaxCubes+1))
	test.ExpectSuccess(t, p.NumCubes.Set(preferences.MaxCubes))
	test.ExpectEquality(t, p.NumCubes.Get().(int), preferences.MaxCubes)

	test.ExpectFailure(t, p.MaxRetries.Set(0))
	test.ExpectSuccess(t, p.MaxRetries.Set("3"))
	test.ExpectEquality(t, p.MaxRetries.Get().(int), 3)

	p.SetDefaults()
	test.ExpectEquality(t, p.MaxRetries.Get().(int), 150)
}

func TestCommandLine(t *testing.T) {
	// invalid values on the command line are an error
	prefs.PushCommandLineStack("mc.numCubes::0")
	_, err := preferences.NewDetachedPreferences()
	test.ExpectFailure(t, err)
	prefs.PopCommandLineStack()

	prefs.PushCommandLineStack("mc.trace.radio::true; mc.numCubes::5")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewDetachedPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.RadioTrace.Get().(bool), true)
	test.ExpectEquality(t, p.NumCubes.Get().(int), 5)
}
