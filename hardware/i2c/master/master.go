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

package master

import (
	"fmt"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/bus"
	"github.com/jetsetilly/i2csim/logger"

	periphi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// Error patterns returned by the master.
const (
	NackError    = "master: nack: %v"
	AddressError = "master: address: %v"
	ClosedError  = "master: closed"
)

// DefaultSpeed of the master.
const DefaultSpeed = 100 * physic.KiloHertz

// Master drives the lines of the simulated bus.
type Master struct {
	env *environment.Environment
	bus *bus.Bus

	speed physic.Frequency

	// name of the master in the i2creg registry. empty if the master has not
	// been registered
	name string

	closed bool
}

var _ periphi2c.BusCloser = (*Master)(nil)
var _ drivers.I2C = (*Master)(nil)

// NewMaster is the preferred method of initialisation for the Master type.
func NewMaster(env *environment.Environment, b *bus.Bus) *Master {
	return &Master{
		env:   env,
		bus:   b,
		speed: DefaultSpeed,
	}
}

// String implements the periph i2c.Bus interface.
func (m *Master) String() string {
	if m.name == "" {
		return fmt.Sprintf("i2csim (%s)", m.speed)
	}
	return fmt.Sprintf("%s (%s)", m.name, m.speed)
}

// Bus returns the bus being driven by the master.
func (m *Master) Bus() *bus.Bus {
	return m.bus
}

// SetSpeed implements the periph i2c.Bus interface. The simulation is not
// timed so the speed only affects the value returned by String().
func (m *Master) SetSpeed(f physic.Frequency) error {
	if f <= 0 {
		return fmt.Errorf("master: invalid speed (%s)", f)
	}
	m.speed = f
	return nil
}

// Close implements the periph i2c.BusCloser interface. The master is removed
// from the i2creg registry if it was added with Register().
func (m *Master) Close() error {
	if m.closed {
		return curated.Errorf(ClosedError)
	}
	m.closed = true
	if m.name != "" {
		name := m.name
		m.name = ""
		return i2creg.Unregister(name)
	}
	return nil
}

// Register adds the master to the periph i2creg registry. Drivers can then
// use i2creg.Open() with the name to open the simulated bus.
func (m *Master) Register(name string) error {
	err := i2creg.Register(name, nil, -1, func() (periphi2c.BusCloser, error) {
		return m, nil
	})
	if err != nil {
		return err
	}
	m.name = name
	return nil
}

// clock a single bit onto the bus.
func (m *Master) clock(v bool) {
	m.bus.Step(v, false)
	m.bus.Step(v, true)
	m.bus.Step(v, false)
}

// Start puts a START condition on the bus. If the clock is low, as it is after
// a byte has been sent, the result is a repeated START.
func (m *Master) Start() {
	if !m.bus.SCL() {
		m.bus.Step(true, false)
		m.bus.Step(true, true)
	}

	// the bus must be idle for at least one round before a START
	m.bus.Step(true, true)

	m.bus.Step(false, true)
	m.bus.Step(false, false)
}

// Stop puts a STOP condition on the bus.
func (m *Master) Stop() {
	m.bus.Step(false, false)
	m.bus.Step(false, true)
	m.bus.Step(true, true)
}

// SendByte clocks the byte onto the bus, MSB first, and returns true if a
// device acknowledged it.
func (m *Master) SendByte(v uint8) bool {
	for i := 7; i >= 0; i-- {
		m.clock(v>>i&0x01 == 0x01)
	}

	// release the line for the acknowledge slot
	m.bus.Step(true, false)
	m.bus.Step(true, true)
	ack := !m.bus.SDA()
	m.bus.Step(true, false)

	return ack
}

// ReceiveByte clocks a byte from the bus, MSB first. The ack argument is the
// response of the master in the acknowledge slot.
func (m *Master) ReceiveByte(ack bool) uint8 {
	var v uint8
	for range 8 {
		m.bus.Step(true, false)
		m.bus.Step(true, true)
		v <<= 1
		if m.bus.SDA() {
			v |= 0x01
		}
		m.bus.Step(true, false)
	}
	m.clock(!ack)
	return v
}

// Tx implements the periph i2c.Bus and the tinygo drivers.I2C interfaces.
//
// The address is sent write framed followed by the bytes in w. If r is not
// empty the address is then sent read framed, after a repeated START if
// necessary, and r is filled. A NACK from the bus at any point ends the
// transaction with a STOP.
func (m *Master) Tx(addr uint16, w, r []byte) error {
	if m.closed {
		return curated.Errorf(ClosedError)
	}
	if addr > uint16(i2c.MaxAddress) {
		return curated.Errorf(AddressError, fmt.Sprintf("%#x is not a 7-bit address", addr))
	}

	a := i2c.Address(addr)

	logger.Logf(m.env, "master", "tx %s w=[% 02x] r=%d", a, w, len(r))

	m.Start()

	if len(w) > 0 || len(r) == 0 {
		if !m.SendByte(a.WriteFrame()) {
			m.Stop()
			return curated.Errorf(NackError, fmt.Sprintf("no device at %s", a))
		}
		for i, v := range w {
			if !m.SendByte(v) {
				m.Stop()
				return curated.Errorf(NackError, fmt.Sprintf("%s: byte %d (%#02x) rejected", a, i, v))
			}
		}
		if len(r) > 0 {
			m.Start()
		}
	}

	if len(r) > 0 {
		if !m.SendByte(a.ReadFrame()) {
			m.Stop()
			return curated.Errorf(NackError, fmt.Sprintf("no device at %s", a))
		}
		for i := range r {
			r[i] = m.ReceiveByte(i < len(r)-1)
		}
	}

	m.Stop()

	return nil
}

// Scan probes every 7-bit address on the bus and returns the addresses that
// were acknowledged.
func (m *Master) Scan() []i2c.Address {
	var found []i2c.Address
	for a := i2c.Address(0); a <= i2c.MaxAddress; a++ {
		if m.Tx(uint16(a), nil, nil) == nil {
			found = append(found, a)
		}
	}
	logger.Logf(m.env, "master", "scan found %d devices", len(found))
	return found
}
