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
	"reflect"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/bus"
)

// Bus is the part of the bus used by the decoder.
type Bus interface {
	Register(dev bus.Device) error
	SetSDA(dev bus.Device, level bool)
}

// event is the classification of a single tick.
type event int

const (
	noEvent event = iota
	startEvent
	stopEvent
	firstBitEvent
	bitEvent
	byteEvent
)

// Decoder turns the line levels of the bus into protocol events for a single
// device.
type Decoder struct {
	bus  Bus
	dev  Device
	sink Sink

	address i2c.Address

	state State

	// the event of the previous tick
	prev event

	direction i2c.Direction

	// the byte being assembled and the index of the most recently captured
	// bit. bits are captured MSB first
	bits   uint8
	bitIdx int

	// number of complete bytes since the most recent START
	count int

	stats Stats
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
// The decoder registers itself with the bus. The sink argument can be nil.
func NewDecoder(b Bus, dev Device, sink Sink) (*Decoder, error) {
	if b == nil {
		return nil, curated.Errorf(ConfigError, "no bus")
	}
	if dev == nil {
		return nil, curated.Errorf(ConfigError, "no device")
	}

	// a typed nil pointer in the interface is also no device
	if v := reflect.ValueOf(dev); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("no device (nil %T)", dev))
	}

	switch f := dev.(type) {
	case Funcs:
		if err := f.validate(); err != nil {
			return nil, curated.Errorf(ConfigError, err)
		}
	case *Funcs:
		if err := f.validate(); err != nil {
			return nil, curated.Errorf(ConfigError, err)
		}
	}

	if !dev.Address().Valid() {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s: address is not 7-bit (%s)", dev.Name(), dev.Address()))
	}

	if sink == nil {
		sink = nopSink{}
	}

	dec := &Decoder{
		bus:     b,
		dev:     dev,
		sink:    sink,
		address: dev.Address(),
		state:   Stopped,
	}

	if err := b.Register(dec); err != nil {
		return nil, err
	}

	dec.logState()

	return dec, nil
}

func (dec *Decoder) String() string {
	s := fmt.Sprintf("%s %s: %s", dec.dev.Name(), dec.address, dec.state)
	switch dec.state {
	case ReceivingByte:
		s = fmt.Sprintf("%s bit=%d byte=%#02x", s, dec.bitIdx, dec.bits)
	case Started:
		if dec.count > 0 {
			s = fmt.Sprintf("%s %s count=%d", s, dec.direction, dec.count)
		}
	}
	return s
}

// Snapshot makes a copy of the decoder. The copy shares the bus, the device and
// the sink with the original.
func (dec *Decoder) Snapshot() *Decoder {
	cp := *dec
	return &cp
}

// Name of the device behind the decoder.
func (dec *Decoder) Name() string {
	return dec.dev.Name()
}

// Address of the device behind the decoder.
func (dec *Decoder) Address() i2c.Address {
	return dec.address
}

// State of the decoder.
func (dec *Decoder) State() State {
	return dec.state
}

// Direction returns the direction of the current transaction. The boolean is
// false if the direction is not known, either because no address has been
// matched since the most recent START or because the decoder is stopped.
func (dec *Decoder) Direction() (i2c.Direction, bool) {
	return dec.direction, dec.count > 0 && dec.state != Stopped
}

// ByteCount returns the number of complete bytes since the most recent START.
func (dec *Decoder) ByteCount() int {
	return dec.count
}

// BitIndex returns the index of the most recently captured bit.
func (dec *Decoder) BitIndex() int {
	return dec.bitIdx
}

// Stats returns a copy of the decoder's event counts.
func (dec *Decoder) Stats() Stats {
	return dec.stats
}

func (dec *Decoder) logf(format string, args ...any) {
	dec.sink.Log(fmt.Sprintf(format, args...))
}

func (dec *Decoder) logState() {
	dec.logf("State: %s", dec.state)
}

func (dec *Decoder) setState(state State) {
	dec.state = state
	dec.logState()
}

// classify returns the single event represented by the sample. The order of
// the cases is the priority of the events.
func (dec *Decoder) classify(s i2c.Sample) event {
	switch {
	case (dec.state == Stopped || dec.state == Started) && dec.prev != stopEvent && s.Start():
		return startEvent
	case dec.state == ReceivingByte && s.Start():
		return startEvent
	case (dec.state == Started || dec.state == ReceivingByte) && s.Stop():
		return stopEvent
	case dec.state == Started && s.ClockFalling():
		switch dec.prev {
		case startEvent, stopEvent, byteEvent:
			return noEvent
		}
		return firstBitEvent
	case dec.state == ReceivingByte && s.ClockRising() && dec.bitIdx < 7:
		return bitEvent
	case dec.state == ReceivingByte && s.ClockRising() && dec.bitIdx == 7:
		return byteEvent
	}
	return noEvent
}

// Tick implements the bus.Device interface.
func (dec *Decoder) Tick(newSDA, newSCL, oldSDA, oldSCL bool) {
	s := i2c.Sample{
		SDA:    newSDA,
		SCL:    newSCL,
		OldSDA: oldSDA,
		OldSCL: oldSCL,
	}

	ev := dec.classify(s)

	// data should not change on a tick where the clock is high, unless it is
	// a start or stop condition. the rising edge of the acknowledge clock is
	// excluded because the acknowledging device pulls SDA low on that tick
	if dec.state == ReceivingByte && s.SCL && s.SDA != s.OldSDA && ev != startEvent && ev != stopEvent && ev != byteEvent {
		dec.stats.Anomalies++
		dec.logf("data changed while clock is high (%s)", s)
	}

	switch ev {
	case startEvent:
		dec.logf("Rx START")
		dec.stats.Starts++
		dec.count = 0
		dec.setState(Started)
		dec.dev.TransactionChanged(Started)

	case stopEvent:
		dec.logf("Rx STOP")
		dec.stats.Stops++
		dec.dev.TransactionChanged(Stopped)
		dec.setState(Stopped)

	case firstBitEvent:
		dec.bitIdx = 0
		dec.bits = 0
		dec.capture(s.SDA)
		dec.setState(ReceivingByte)

	case bitEvent:
		dec.bitIdx++
		dec.capture(s.SDA)

	case byteEvent:
		dec.bitIdx++
		dec.stats.Bytes++
		dec.logf("Rx byte=%#02x", dec.bits)
		if dec.count == 0 {
			dec.matchAddress()
		} else {
			dec.payload()
		}
	}

	dec.prev = ev
}

func (dec *Decoder) capture(v bool) {
	if v {
		dec.bits |= 0x80 >> dec.bitIdx
	}
	dec.logf("Rx data bit %d=%d", dec.bitIdx, dec.bits>>(7-dec.bitIdx)&0x01)
}

// the first byte after a START is the address of the device the transaction
// is for, along with the direction of the transaction
func (dec *Decoder) matchAddress() {
	ok, dir := dec.address.Matches(dec.bits)
	addr, _ := i2c.Extract(dec.bits)

	if !ok {
		dec.stats.Ignored++
		dec.logf("address %s is for another device", addr)
		dec.logf("ignoring further data until next START")
		dec.setState(Stopped)
		return
	}

	dec.direction = dir
	dec.logf("address %s matches %s", addr, dec.dev.Name())
	dec.logf("accepting %s data", dir)
	dec.dev.TransactionChanged(Started)
	dec.ack()
	dec.count++
	dec.setState(Started)
}

// bytes after the address byte are given to the device. the device decides
// whether the transaction continues
func (dec *Decoder) payload() {
	var accept bool
	if dec.direction == i2c.Read {
		accept = dec.dev.ByteRead(dec.bits)
	} else {
		accept = dec.dev.ByteWritten(dec.bits)
	}

	if accept {
		dec.ack()
		dec.count++
		dec.setState(Started)
		return
	}

	dec.dev.TransactionChanged(Stopped)
	dec.nack()
	dec.setState(Stopped)
}

// the master samples the acknowledge on the next falling edge of the clock
func (dec *Decoder) ack() {
	dec.stats.Acks++
	dec.logf("Tx ACK  bit 8=0")
	dec.bus.SetSDA(dec, false)
}

func (dec *Decoder) nack() {
	dec.stats.Nacks++
	dec.logf("Tx NACK bit 8=1")
	dec.bus.SetSDA(dec, true)
}
