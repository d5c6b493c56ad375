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

package modalflag_test

import (
	"testing"

	"github.com/glocklueng/thundercracker/modalflag"
	"github.com/glocklueng/thundercracker/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
	test.ExpectSuccess(t, md.Parsed())
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-trace", "image.lua", "2"})
	trace := md.AddBool("trace", false, "trace flag")
	test.ExpectFailure(t, *trace)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectSuccess(t, *trace)
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "image.lua")
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"install", "-flash", "out.bin", "image.lua"})
	md.AddSubModes("run", "install", "version")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "INSTALL")

	md.NewMode()
	test.ExpectFailure(t, md.Parsed())
	fn := md.AddString("flash", "", "flash file")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *fn, "out.bin")
	test.ExpectEquality(t, md.GetArg(0), "image.lua")
	test.ExpectEquality(t, md.Path(), "INSTALL")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}

	// flags that belong to the default mode
	md.NewArgs([]string{"-cubes", "4", "image.lua"})
	md.AddSubModes("RUN", "INSTALL")
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	cubes := md.AddInt("cubes", 3, "number of cubes")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *cubes, 4)
	test.ExpectEquality(t, md.GetArg(0), "image.lua")

	// unrecognised flag with no modes to fall back on
	md.NewArgs([]string{"-unknown"})
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestPrefs(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-retries", "10", "-cubes", "2", "-other", "x"})
	md.AddPref("cubes", "mc.numCubes", "number of cubes")
	md.AddPref("retries", "mc.radio.maxRetries", "radio retries")
	md.AddPref("trace", "mc.trace.radio", "radio trace")
	other := md.AddString("other", "", "not a preference")

	_, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, *other, "x")
	test.ExpectEquality(t, md.CommandLinePrefs(), "mc.numCubes::2; mc.radio.maxRetries::10")

	var set []string
	md.Visit(func(f string) {
		set = append(set, f)
	})
	test.ExpectEquality(t, len(set), 3)
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "No help available\n")
}

func TestHelpFlags(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}

func TestHelpModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("run", "install", "version")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  available sub-modes: RUN, INSTALL, VERSION\n" +
		"    default: RUN\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("A", "B", "C")
	md.AdditionalHelp("more help")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"\n" +
		"  available sub-modes: A, B, C\n" +
		"    default: A\n" +
		"\nmore help\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}
