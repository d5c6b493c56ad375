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


package prefs_test

import (
	"testing"

	"github.com/glocklueng/thundercracker/prefs"
	"github.com/glocklueng/thundercracker/test"
)

func TestCommandLineParsing(t *testing.T) {
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// the form produced by modalflag.CommandLinePrefs()
	prefs.PushCommandLineStack("mc.numCubes::2; mc.radio.maxRetries::10")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "mc.numCubes::2; mc.radio.maxRetries::10")

	// whitespace around keys and values is ignored and the result is sorted
	prefs.PushCommandLineStack("  mc.trace.radio ::  true ;mc.assertions::false")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "mc.assertions::false; mc.trace.radio::true")

	// only the first separator divides key from value
	prefs.PushCommandLineStack("flash::a::b")
	ok, v := prefs.GetCommandLinePref("flash")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("a::b"))
	prefs.PopCommandLineStack()

	// malformed pairs are dropped without affecting the others
	prefs.PushCommandLineStack("mc.numCubes;mc.entryParam::7;;")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "mc.entryParam::7")
}

func TestCommandLineConsumption(t *testing.T) {
	prefs.PushCommandLineStack("mc.numCubes::4; mc.entryParam::7")

	ok, v := prefs.GetCommandLinePref("mc.numCubes")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("4"))

	// a value is only used once
	ok, _ = prefs.GetCommandLinePref("mc.numCubes")
	test.ExpectFailure(t, ok)

	ok, _ = prefs.GetCommandLinePref("mc.trace.svm")
	test.ExpectFailure(t, ok)

	// popping the group returns what was never used
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "mc.entryParam::7")

	// nothing on the stack
	ok, _ = prefs.GetCommandLinePref("mc.entryParam")
	test.ExpectFailure(t, ok)
}

func TestCommandLineGroups(t *testing.T) {
	prefs.PushCommandLineStack("mc.numCubes::4")
	prefs.PushCommandLineStack("mc.entryParam::7")

	// only the most recent group is consulted
	ok, _ := prefs.GetCommandLinePref("mc.numCubes")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "mc.entryParam::7")

	// the earlier group is untouched
	ok, v := prefs.GetCommandLinePref("mc.numCubes")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("4"))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}
