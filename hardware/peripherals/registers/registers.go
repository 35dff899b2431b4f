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

// Package registers implements a generic register file on the simulated bus,
// in the manner of a real-time clock or sensor.
//
// The first byte written in a transaction is the register pointer. Bytes
// written after the pointer are stored in consecutive registers. Reads begin
// at the current pointer and also advance it.
//
// Writes to read-only registers and accesses beyond the last register are
// rejected and the transaction ends with a NACK.
package registers

import (
	"fmt"

	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/slave"
	"github.com/jetsetilly/i2csim/logger"
)

// Registers is the device attached to the bus. It implements the slave.Device
// interface.
type Registers struct {
	env     *environment.Environment
	address i2c.Address

	Values   []uint8
	ReadOnly []bool

	// the register the next read or write will access
	Pointer int

	// true if the next byte written is the register pointer
	expectPointer bool
}

// NewRegisters is the preferred method of initialisation for the Registers
// type. The address is taken from the preferences. The readOnly arguments are
// the numbers of registers that can not be written to over the bus.
func NewRegisters(env *environment.Environment, size int, readOnly ...int) *Registers {
	reg := &Registers{
		env:      env,
		address:  i2c.Address(env.Prefs.RegistersAddress.Get().(int)),
		Values:   make([]uint8, size),
		ReadOnly: make([]bool, size),
	}
	for _, r := range readOnly {
		if r >= 0 && r < size {
			reg.ReadOnly[r] = true
		}
	}
	logger.Logf(env, "registers", "attached at %s [%d registers]", reg.address, size)
	return reg
}

func (reg *Registers) String() string {
	return fmt.Sprintf("registers: pointer %#02x", reg.Pointer)
}

// Poke sets the value of a register without regard to whether the register is
// read-only.
func (reg *Registers) Poke(r int, v uint8) {
	reg.Values[r] = v
}

// Peek returns the value of a register.
func (reg *Registers) Peek(r int) uint8 {
	return reg.Values[r]
}

// Address implements the slave.Device interface.
func (reg *Registers) Address() i2c.Address {
	return reg.address
}

// Name implements the slave.Device interface.
func (reg *Registers) Name() string {
	return "registers"
}

// TransactionChanged implements the slave.Device interface.
func (reg *Registers) TransactionChanged(state slave.State) {
	reg.expectPointer = state == slave.Started
}

// ByteWritten implements the slave.Device interface.
func (reg *Registers) ByteWritten(v uint8) bool {
	if reg.expectPointer {
		reg.expectPointer = false
		if int(v) >= len(reg.Values) {
			logger.Logf(reg.env, "registers", "pointer out of range (%#02x)", v)
			return false
		}
		reg.Pointer = int(v)
		return true
	}

	if reg.Pointer >= len(reg.Values) {
		logger.Logf(reg.env, "registers", "write past last register")
		return false
	}
	if reg.ReadOnly[reg.Pointer] {
		logger.Logf(reg.env, "registers", "write to read-only register %#02x", reg.Pointer)
		return false
	}

	reg.Values[reg.Pointer] = v
	reg.Pointer++

	return true
}

// ByteRead implements the slave.Device interface. The device does not drive
// the line when it is read so the value is only logged.
func (reg *Registers) ByteRead(_ uint8) bool {
	reg.expectPointer = false
	if reg.Pointer >= len(reg.Values) {
		logger.Logf(reg.env, "registers", "read past last register")
		return false
	}
	logger.Logf(reg.env, "registers", "read register %#02x (%#02x)", reg.Pointer, reg.Values[reg.Pointer])
	reg.Pointer++
	return true
}
