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

package bench

import (
	"fmt"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c/bus"
	"github.com/jetsetilly/i2csim/hardware/i2c/master"
	"github.com/jetsetilly/i2csim/hardware/i2c/slave"
	"github.com/jetsetilly/i2csim/hardware/peripherals/eeprom"
	"github.com/jetsetilly/i2csim/hardware/peripherals/expander"
	"github.com/jetsetilly/i2csim/hardware/peripherals/registers"
	"github.com/jetsetilly/i2csim/logger"
)

// BenchError is returned when the bench can not be assembled or shutdown.
const BenchError = "bench: %v"

// NumRegisters is the size of the register file device.
const NumRegisters = 0x40

// Bench is the complete simulation.
type Bench struct {
	env *environment.Environment

	Bus    *bus.Bus
	Master *master.Master

	// nil if the device is not attached
	EEPROM    *eeprom.EEPROM
	Expander  *expander.Expander
	Registers *registers.Registers

	// one decoder for every attached device, in the order in which they
	// were registered with the bus
	Decoders []*slave.Decoder
}

// NewBench is the preferred method of initialisation for the Bench type.
func NewBench(env *environment.Environment) (*Bench, error) {
	bn := &Bench{
		env: env,
		Bus: bus.NewBus(env),
	}
	bn.Master = master.NewMaster(env, bn.Bus)

	if env.Prefs.EEPROMAddress.Get().(int) != -1 {
		var err error
		bn.EEPROM, err = eeprom.NewEEPROM(env)
		if err != nil {
			return nil, curated.Errorf(BenchError, err)
		}
		if err := bn.attach(bn.EEPROM); err != nil {
			return nil, err
		}
	}

	if env.Prefs.ExpanderAddress.Get().(int) != -1 {
		bn.Expander = expander.NewExpander(env)
		if err := bn.attach(bn.Expander); err != nil {
			return nil, err
		}
	}

	if env.Prefs.RegistersAddress.Get().(int) != -1 {
		bn.Registers = registers.NewRegisters(env, NumRegisters)
		if err := bn.attach(bn.Registers); err != nil {
			return nil, err
		}
	}

	return bn, nil
}

func (bn *Bench) attach(dev slave.Device) error {
	for _, d := range bn.Decoders {
		if d.Address() == dev.Address() {
			return curated.Errorf(BenchError, fmt.Sprintf("%s and %s share address %s", d.Name(), dev.Name(), dev.Address()))
		}
	}

	dec, err := slave.NewDecoder(bn.Bus, dev, logger.NewSink(bn.env, dev.Name()))
	if err != nil {
		return curated.Errorf(BenchError, err)
	}
	bn.Decoders = append(bn.Decoders, dec)

	return nil
}

func (bn *Bench) String() string {
	s := strings.Builder{}
	s.WriteString(bn.Bus.String())
	for _, d := range bn.Decoders {
		s.WriteString("\n")
		s.WriteString(d.String())
	}
	return s.String()
}

// Stats returns the statistics of every decoder, one decoder per line.
func (bn *Bench) Stats() string {
	s := strings.Builder{}
	for _, d := range bn.Decoders {
		s.WriteString(fmt.Sprintf("%s %s: %s\n", d.Name(), d.Address(), d.Stats()))
	}
	return s.String()
}

// Shutdown writes the EEPROM to disk and closes the master.
func (bn *Bench) Shutdown() error {
	if bn.EEPROM != nil {
		if err := bn.EEPROM.Memory.Write(); err != nil {
			return curated.Errorf(BenchError, err)
		}
	}
	if err := bn.Master.Close(); err != nil {
		return curated.Errorf(BenchError, err)
	}
	return nil
}

// Memviz writes a graphviz representation of the bench to the named file.
func (bn *Bench) Memviz(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(BenchError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(BenchError, err)
		}
	}()

	memviz.Map(f, bn)

	return nil
}
