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

// Package expander implements a PCF8574 8-bit GPIO expander on the simulated
// bus.
//
// The PCF8574 has no registers. Every byte written to the device becomes the
// state of the eight pins. A pin set high is weakly pulled up and a pin set
// low sinks current.
package expander

import (
	"fmt"

	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/slave"
	"github.com/jetsetilly/i2csim/logger"
)

// Expander is the device attached to the bus. It implements the slave.Device
// interface.
type Expander struct {
	env     *environment.Environment
	address i2c.Address

	// state of the pins. all pins are high when the device is powered on
	Pins uint8

	// number of times the pins have been written and read
	Writes int
	Reads  int

	// true while the device is part of a transaction
	active bool
}

// NewExpander is the preferred method of initialisation for the Expander
// type. The address is taken from the preferences.
func NewExpander(env *environment.Environment) *Expander {
	ex := &Expander{
		env:     env,
		address: i2c.Address(env.Prefs.ExpanderAddress.Get().(int)),
		Pins:    0xff,
	}
	logger.Logf(env, "expander", "attached at %s", ex.address)
	return ex
}

func (ex *Expander) String() string {
	return fmt.Sprintf("expander: pins %08b", ex.Pins)
}

// Pin returns true if the numbered pin is high.
func (ex *Expander) Pin(p uint8) bool {
	return ex.Pins&(1<<p) != 0
}

// Address implements the slave.Device interface.
func (ex *Expander) Address() i2c.Address {
	return ex.address
}

// Name implements the slave.Device interface.
func (ex *Expander) Name() string {
	return "expander"
}

// TransactionChanged implements the slave.Device interface.
func (ex *Expander) TransactionChanged(state slave.State) {
	ex.active = state == slave.Started
}

// ByteWritten implements the slave.Device interface.
func (ex *Expander) ByteWritten(v uint8) bool {
	if !ex.active {
		return false
	}
	ex.Pins = v
	ex.Writes++
	logger.Logf(ex.env, "expander", "pins %08b", v)
	return true
}

// ByteRead implements the slave.Device interface.
func (ex *Expander) ByteRead(_ uint8) bool {
	if !ex.active {
		return false
	}
	ex.Reads++
	return true
}
