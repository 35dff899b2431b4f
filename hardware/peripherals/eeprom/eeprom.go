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

package eeprom

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/slave"
	"github.com/jetsetilly/i2csim/logger"
)

// State records how incoming bytes will be interpreted.
type State int

// List of valid State values.
const (
	Stopped State = iota
	AddressHi
	AddressLo
	Data
)

// EEPROM is the device attached to the bus. It implements the slave.Device
// interface.
type EEPROM struct {
	env     *environment.Environment
	address i2c.Address

	State State

	// high byte of the address while the low byte is being received
	hi uint8

	// the core of the device
	Memory *Memory
}

// NewEEPROM is the preferred method of initialisation for the EEPROM type.
// The address, size and file of the EEPROM are taken from the preferences.
// Existing data is read from the file.
func NewEEPROM(env *environment.Environment) (*EEPROM, error) {
	ee := &EEPROM{
		env:     env,
		address: i2c.Address(env.Prefs.EEPROMAddress.Get().(int)),
		Memory:  newMemory(env.Prefs.EEPROMSize.Get().(int), env.Prefs.EEPROMFile.Get().(string)),
	}

	if err := ee.Memory.Read(); err != nil {
		return nil, err
	}

	logger.Logf(env, "eeprom", "attached at %s [%d bytes]", ee.address, len(ee.Memory.Data))

	return ee, nil
}

// Snapshot makes a copy of the EEPROM.
func (ee *EEPROM) Snapshot() *EEPROM {
	cp := *ee
	cp.Memory = ee.Memory.snapshot()
	return &cp
}

func (ee *EEPROM) String() string {
	s := strings.Builder{}
	s.WriteString("eeprom: ")

	switch ee.State {
	case Stopped:
		s.WriteString("stopped")
	case AddressHi:
		fallthrough
	case AddressLo:
		s.WriteString("address")
	case Data:
		s.WriteString(fmt.Sprintf("data at %#04x", ee.Memory.Address))
	}

	if !ee.Memory.IsSaved() {
		s.WriteString(" [unsaved]")
	}

	return s.String()
}

// Address implements the slave.Device interface.
func (ee *EEPROM) Address() i2c.Address {
	return ee.address
}

// Name implements the slave.Device interface.
func (ee *EEPROM) Name() string {
	return "eeprom"
}

// TransactionChanged implements the slave.Device interface.
func (ee *EEPROM) TransactionChanged(state slave.State) {
	switch state {
	case slave.Started:
		// the address bytes follow a START. a read does not send any
		// address bytes and continues from the current address
		ee.State = AddressHi

	case slave.Stopped:
		ee.State = Stopped
		if err := ee.Memory.Write(); err != nil {
			logger.Log(ee.env, "eeprom", err)
		}
	}
}

func printable(v uint8) string {
	if unicode.IsPrint(rune(v)) {
		return fmt.Sprintf("%#02x [%c]", v, v)
	}
	return fmt.Sprintf("%#02x", v)
}

// ByteWritten implements the slave.Device interface.
func (ee *EEPROM) ByteWritten(v uint8) bool {
	switch ee.State {
	case AddressHi:
		ee.hi = v
		ee.State = AddressLo

	case AddressLo:
		ee.Memory.setAddress(uint16(ee.hi)<<8 | uint16(v))
		ee.State = Data
		logger.Logf(ee.env, "eeprom", "address %#04x", ee.Memory.Address)

	case Data:
		logger.Logf(ee.env, "eeprom", "written byte %s to %#04x", printable(v), ee.Memory.Address)
		ee.Memory.put(v)

	default:
		return false
	}

	return true
}

// ByteRead implements the slave.Device interface. The device does not drive
// the line when it is read so the value is only logged.
func (ee *EEPROM) ByteRead(_ uint8) bool {
	if ee.State == Stopped {
		return false
	}
	ee.State = Data
	a := ee.Memory.Address
	v := ee.Memory.get()
	logger.Logf(ee.env, "eeprom", "read byte %s from %#04x", printable(v), a)
	return true
}
