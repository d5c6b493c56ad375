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

// Package environment is the context passed to every component of a
// simulation instance. It carries the preferences and identifies the
// instance for the purposes of logging.
package environment

import (
	"github.com/glocklueng/thundercracker/hardware/preferences"
)

// Label is used to name the environment.
type Label string

// MainSimulation is the label used for the main simulation instance.
const MainSimulation = Label("")

// Environment is used to provide context for a simulation instance.
type Environment struct {
	Label Label

	// the simulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. If prefs is nil then the preferences are loaded from
// disk.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// testing.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsMainSimulation returns true if the environment is for the main
// simulation instance.
func (env *Environment) IsMainSimulation() bool {
	return env.Label == MainSimulation
}

// AllowLogging implements the logger.Permission interface. Only the main
// simulation, or an environment with radio tracing turned on, is allowed to
// log.
func (env *Environment) AllowLogging() bool {
	return env.IsMainSimulation() || env.Prefs.RadioTrace.Get().(bool)
}
