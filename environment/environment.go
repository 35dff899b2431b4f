// This file is part of i2csim.
//
// i2csim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i2csim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i2csim.  If not, see <https://www.gnu.org/licenses/>.

package environment

import (
	"github.com/jetsetilly/i2csim/hardware/preferences"
)

// Label is used to name the environment
type Label string

// MainSimulation is the label of the environment created by the main program.
const MainSimulation = Label("")

// Environment is used to provide context for a simulation. Particularly useful
// when more than one bench is running in the same process, for example during
// tests
type Environment struct {
	Label Label

	// the simulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance
// will be created from the default preferences file. Providing a non-nil value
// allows the preferences of more than one simulation to be shared.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// regression testing where the initial state must be the same for every run of
// the test.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface. Diagnostic
// trace is only logged if the sim.trace preference is set
func (env *Environment) AllowLogging() bool {
	return env.Prefs.Trace.Get().(bool)
}

// TraceLines returns true if every tick of the bus should be logged
func (env *Environment) TraceLines() bool {
	return env.AllowLogging() && env.Prefs.TraceLines.Get().(bool)
}

// IsMainSimulation returns true if the environment is intended for the main
// simulation in the program
func (env *Environment) IsMainSimulation() bool {
	return env.Label == MainSimulation
}

// IsSimulation checks the label and returns true if it matches
func (env *Environment) IsSimulation(label Label) bool {
	return env.Label == label
}
