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

package bus

import (
	"fmt"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/logger"
)

// RegistrationError is returned by Register() when a device cannot be
// attached to the bus.
const RegistrationError = "bus: registration: %v"

// Device is attached to the bus with Register() and is ticked once every round.
type Device interface {
	Tick(newSDA, newSCL, oldSDA, oldSCL bool)
}

// Bus is the shared medium. It owns the levels of both lines and is the only
// part of the simulation that changes them.
type Bus struct {
	env *environment.Environment

	devices []Device

	// holds is parallel to the devices slice. a true entry means the device
	// is holding SDA low
	holds []bool

	// committed levels of the lines at the end of the previous round
	sda bool
	scl bool

	// level of SDA as driven by the master for the current round
	master bool

	ticks uint64

	// recent activity of the lines. the length of the traces is taken from
	// the sim.activity preference
	sdaTrace i2c.Trace
	sclTrace i2c.Trace

	observers []func(sda, scl bool)
}

// NewBus is the preferred method of initialisation for the Bus type. Both
// lines are pulled high when the bus is created.
func NewBus(env *environment.Environment) *Bus {
	activity := env.Prefs.Activity.Get().(int)
	return &Bus{
		env:      env,
		sda:      true,
		scl:      true,
		master:   true,
		sdaTrace: i2c.NewTrace("SDA", activity),
		sclTrace: i2c.NewTrace("SCL", activity),
	}
}

func (b *Bus) String() string {
	return fmt.Sprintf("%s [%d devices, %d ticks]", i2c.Sample{SDA: b.sda, SCL: b.scl}, len(b.devices), b.ticks)
}

// Register attaches a device to the bus. Devices are ticked in the order in
// which they are registered.
func (b *Bus) Register(dev Device) error {
	if dev == nil {
		return curated.Errorf(RegistrationError, "nil device")
	}
	if b.index(dev) != -1 {
		return curated.Errorf(RegistrationError, fmt.Sprintf("device already registered (%v)", dev))
	}
	b.devices = append(b.devices, dev)
	b.holds = append(b.holds, false)
	return nil
}

// Devices returns the registered devices in the order in which they are
// ticked.
func (b *Bus) Devices() []Device {
	return b.devices
}

// AddObserver adds a function that is called at the end of every round with
// the committed levels of both lines.
func (b *Bus) AddObserver(f func(sda, scl bool)) {
	b.observers = append(b.observers, f)
}

func (b *Bus) index(dev Device) int {
	for i, d := range b.devices {
		if d == dev {
			return i
		}
	}
	return -1
}

// level returns the wired-AND of the master and all device holds.
func (b *Bus) level() bool {
	if !b.master {
		return false
	}
	for _, h := range b.holds {
		if h {
			return false
		}
	}
	return true
}

// SetSDA is called by a device to drive the data line. A low level holds the
// line low. A high level releases the hold. Calls from devices that are not
// registered are ignored.
func (b *Bus) SetSDA(dev Device, level bool) {
	i := b.index(dev)
	if i == -1 {
		logger.Logf(b.env, "bus", "SetSDA() from unregistered device (%v)", dev)
		return
	}
	b.holds[i] = !level
}

// Step runs a single round of the bus. The sda and scl arguments are the
// levels driven by the master.
func (b *Bus) Step(sda, scl bool) {
	oldSDA := b.sda
	oldSCL := b.scl

	// device holds end on the falling edge of the clock
	if oldSCL && !scl {
		clear(b.holds)
	}

	b.master = sda
	b.scl = scl

	for _, d := range b.devices {
		d.Tick(b.level(), scl, oldSDA, oldSCL)
	}

	b.sda = b.level()
	b.sdaTrace.Tick(b.sda)
	b.sclTrace.Tick(b.scl)
	b.ticks++

	if b.env.TraceLines() {
		logger.Log(b.env, "bus", i2c.Sample{SDA: b.sda, SCL: b.scl, OldSDA: oldSDA, OldSCL: oldSCL})
	}

	for _, f := range b.observers {
		f(b.sda, b.scl)
	}
}

// Idle runs the bus for n rounds without changing the level of either line.
func (b *Bus) Idle(n int) {
	for range n {
		b.Step(b.master, b.scl)
	}
}

// SDA returns the committed level of the data line.
func (b *Bus) SDA() bool {
	return b.sda
}

// SCL returns the committed level of the clock line.
func (b *Bus) SCL() bool {
	return b.scl
}

// Traces returns copies of the activity traces for both lines.
func (b *Bus) Traces() (sda *i2c.Trace, scl *i2c.Trace) {
	return b.sdaTrace.Snapshot(), b.sclTrace.Snapshot()
}

// Ticks returns the number of rounds since the bus was created.
func (b *Bus) Ticks() uint64 {
	return b.ticks
}
