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

package slave

import (
	"fmt"

	"github.com/jetsetilly/i2csim/hardware/i2c"
)

// ConfigError is returned by NewDecoder() when the decoder can not be created.
const ConfigError = "slave: configuration: %v"

// State of the protocol decoder.
type State int

// List of valid State values.
const (
	Stopped State = iota
	Started
	ReceivingByte
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Started:
		return "Started"
	case ReceivingByte:
		return "ReceivingByte"
	}
	return "unknown"
}

// Device is implemented by the simulated peripheral that sits behind the
// decoder.
type Device interface {
	// the 7-bit address of the device. the address must not change for the
	// lifetime of the device
	Address() i2c.Address

	// the name of the device, used in diagnostics
	Name() string

	// called when the decoder enters the Started or Stopped state because of
	// a START, a STOP, a matching address or a rejected byte
	TransactionChanged(state State)

	// called once per payload byte. the return value is the ACK (true) or
	// NACK (false) decision
	ByteRead(b uint8) bool
	ByteWritten(b uint8) bool
}

// Funcs is a Device made from function values. All function fields must be
// set.
type Funcs struct {
	Addr        i2c.Address
	Label       string
	Transaction func(State)
	Read        func(uint8) bool
	Write       func(uint8) bool
}

// Address implements the Device interface.
func (f Funcs) Address() i2c.Address {
	return f.Addr
}

// Name implements the Device interface.
func (f Funcs) Name() string {
	return f.Label
}

// TransactionChanged implements the Device interface.
func (f Funcs) TransactionChanged(state State) {
	f.Transaction(state)
}

// ByteRead implements the Device interface.
func (f Funcs) ByteRead(b uint8) bool {
	return f.Read(b)
}

// ByteWritten implements the Device interface.
func (f Funcs) ByteWritten(b uint8) bool {
	return f.Write(b)
}

func (f Funcs) validate() error {
	if f.Transaction == nil {
		return fmt.Errorf("%s: no transaction function", f.Label)
	}
	if f.Read == nil {
		return fmt.Errorf("%s: no read function", f.Label)
	}
	if f.Write == nil {
		return fmt.Errorf("%s: no write function", f.Label)
	}
	return nil
}

// Sink receives diagnostic messages from the decoder. Messages have no effect
// on the behaviour of the decoder.
type Sink interface {
	Log(detail string)
}

type nopSink struct{}

func (nopSink) Log(_ string) {}

// Stats is a count of notable events seen by the decoder.
type Stats struct {
	Starts    int
	Stops     int
	Bytes     int
	Acks      int
	Nacks     int
	Ignored   int
	Anomalies int
}

func (s Stats) String() string {
	return fmt.Sprintf("start=%d stop=%d bytes=%d ack=%d nack=%d ignored=%d anomalies=%d",
		s.Starts, s.Stops, s.Bytes, s.Acks, s.Nacks, s.Ignored, s.Anomalies)
}
