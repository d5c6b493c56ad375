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

package preferences

import (
	"fmt"

	"github.com/glocklueng/thundercracker/paths"
	"github.com/glocklueng/thundercracker/prefs"
)

// MaxCubes is the largest number of cubes the simulation can be configured
// with.
const MaxCubes = 32

// Preferences for the master controller simulation.
type Preferences struct {
	dsk *prefs.Disk

	// number of cubes in the cube set. the address resolver never looks
	// beyond this number of cubes
	NumCubes prefs.Int

	// parameter passed to the firmware loader when the simulation thread
	// starts
	EntryParam prefs.Int

	// number of delivery attempts for a single radio packet before the
	// transaction times out
	MaxRetries prefs.Int

	// trace each instruction (or API call) executed by the firmware VM
	SVMTrace prefs.Bool

	// collect and log flash block cache statistics
	FlashStats prefs.Bool

	// monitor and log the firmware's stack usage
	StackMonitor prefs.Bool

	// log every radio packet delivery attempt
	RadioTrace prefs.Bool

	// consistency violations are fatal
	Assertions prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource directory.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

// NewDetachedPreferences creates a Preferences instance with default values
// that is not associated with any file. Save() and Load() have no effect
// but values on the command line stack are still applied.
func NewDetachedPreferences() (*Preferences, error) {
	return newPreferences("")
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.NumCubes.SetHookPre(func(v prefs.Value) error {
		if n := v.(int); n < 1 || n > MaxCubes {
			return fmt.Errorf("preferences: number of cubes must be between 1 and %d", MaxCubes)
		}
		return nil
	})

	p.MaxRetries.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("preferences: radio retries must be at least 1")
		}
		return nil
	})

	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("mc.numCubes", &p.NumCubes)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("mc.entryParam", &p.EntryParam)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("mc.radio.maxRetries", &p.MaxRetries)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("mc.trace.svm", &p.SVMTrace)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("mc.trace.flashStats", &p.FlashStats)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("mc.trace.stackMonitor", &p.StackMonitor)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("mc.trace.radio", &p.RadioTrace)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("mc.assertions", &p.Assertions)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.NumCubes.Set(3)
	p.EntryParam.Set(111)
	p.MaxRetries.Set(150)
	p.SVMTrace.Set(false)
	p.FlashStats.Set(false)
	p.StackMonitor.Set(false)
	p.RadioTrace.Set(false)
	p.Assertions.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
