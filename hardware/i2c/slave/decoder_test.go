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

package slave_test

import (
	"testing"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/bus"
	"github.com/jetsetilly/i2csim/hardware/i2c/slave"
	"github.com/jetsetilly/i2csim/test"
)

// fakeBus records the line drives requested by the decoder
type fakeBus struct {
	devices []bus.Device
	drives  []bool
}

func (b *fakeBus) Register(dev bus.Device) error {
	b.devices = append(b.devices, dev)
	return nil
}

func (b *fakeBus) SetSDA(dev bus.Device, level bool) {
	b.drives = append(b.drives, level)
}

// recorder is the device behind the decoder
type recorder struct {
	transactions []slave.State
	read         []uint8
	written      []uint8
	accept       bool
}

func (r *recorder) funcs(addr i2c.Address) slave.Funcs {
	return slave.Funcs{
		Addr:  addr,
		Label: "recorder",
		Transaction: func(s slave.State) {
			r.transactions = append(r.transactions, s)
		},
		Read: func(b uint8) bool {
			r.read = append(r.read, b)
			return r.accept
		},
		Write: func(b uint8) bool {
			r.written = append(r.written, b)
			return r.accept
		},
	}
}

// harness feeds ticks directly to the decoder. both lines start high
type harness struct {
	t   *testing.T
	dec *slave.Decoder
	bus *fakeBus
	dev *recorder
	sda bool
	scl bool
}

func newHarness(t *testing.T, addr i2c.Address) *harness {
	t.Helper()
	h := &harness{
		t:   t,
		bus: &fakeBus{},
		dev: &recorder{accept: true},
		sda: true,
		scl: true,
	}
	var err error
	h.dec, err = slave.NewDecoder(h.bus, h.dev.funcs(addr), nil)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(h.bus.devices), 1)
	return h
}

func (h *harness) step(sda, scl bool) {
	h.dec.Tick(sda, scl, h.sda, h.scl)
	h.sda = sda
	h.scl = scl
}

func (h *harness) start() {
	h.step(false, true)
	h.step(false, false)
}

func (h *harness) stop() {
	h.step(false, false)
	h.step(false, true)
	h.step(true, true)
}

func (h *harness) bit(v bool) {
	h.step(v, false)
	h.step(v, true)
	h.step(v, false)
}

func (h *harness) send(b uint8) {
	for i := 7; i >= 0; i-- {
		h.bit(b>>i&0x01 == 0x01)
	}

	// acknowledge slot. the byte is completed by the rising edge
	h.step(true, false)
	h.step(true, true)
	h.step(true, false)
}

// device is a Device implementation with pointer receivers
type device struct {
	addr i2c.Address
}

func (d *device) Address() i2c.Address { return d.addr }
func (d *device) Name() string { return "device" }
func (d *device) TransactionChanged(_ slave.State) {}
func (d *device) ByteRead(_ uint8) bool { return true }
func (d *device) ByteWritten(_ uint8) bool { return true }

func TestConfiguration(t *testing.T) {
	r := &recorder{}
	b := &fakeBus{}

	_, err := slave.NewDecoder(b, nil, nil)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	// typed nil pointers are not devices
	var nilFuncs *slave.Funcs
	_, err = slave.NewDecoder(b, nilFuncs, nil)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	var nilDevice *device
	_, err = slave.NewDecoder(b, nilDevice, nil)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	_, err = slave.NewDecoder(nil, r.funcs(0x50), nil)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	f := r.funcs(0x50)
	f.Read = nil
	_, err = slave.NewDecoder(b, f, nil)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	f = r.funcs(0x50)
	f.Write = nil
	_, err = slave.NewDecoder(b, &f, nil)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	f = r.funcs(0x50)
	f.Transaction = nil
	_, err = slave.NewDecoder(b, f, nil)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	_, err = slave.NewDecoder(b, r.funcs(0x80), nil)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, slave.ConfigError))

	// nothing should have been registered with the bus
	test.ExpectEquality(t, len(b.devices), 0)

	dec, err := slave.NewDecoder(b, r.funcs(0x50), nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, dec.State(), slave.Stopped)
	test.ExpectEquality(t, dec.Address(), 0x50)
	test.ExpectEquality(t, dec.Name(), "recorder")
	test.ExpectEquality(t, len(b.devices), 1)
}

func TestPointerDevice(t *testing.T) {
	b := &fakeBus{}
	dec, err := slave.NewDecoder(b, &device{addr: 0x21}, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dec.Name(), "device")
	test.ExpectEquality(t, len(b.devices), 1)
}

func TestStart(t *testing.T) {
	for _, from := range []slave.State{slave.Stopped, slave.Started} {
		h := newHarness(t, 0x50)
		if from == slave.Started {
			h.start()
			h.dev.transactions = nil
		}
		test.DemandEquality(t, h.dec.State(), from)

		h.step(true, false)
		h.step(true, true)
		h.step(false, true)
		test.ExpectEquality(t, h.dec.State(), slave.Started, from)
		test.ExpectEquality(t, len(h.dev.transactions), 1, from)
		test.ExpectEquality(t, h.dev.transactions[0], slave.Started, from)
		test.ExpectEquality(t, h.dec.ByteCount(), 0, from)

		// clock falls after the start. this is not the first bit of a byte
		h.step(false, false)
		test.ExpectEquality(t, h.dec.State(), slave.Started, from)
		test.ExpectEquality(t, len(h.dev.transactions), 1, from)
	}
}

func TestStartNeedsClockHeld(t *testing.T) {
	h := newHarness(t, 0x50)
	h.step(true, false)

	// data falls on the same tick as the clock rises
	h.step(false, true)
	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
	test.ExpectEquality(t, len(h.dev.transactions), 0)
}

func TestStop(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.stop()
	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
	test.ExpectEquality(t, len(h.dev.transactions), 2)
	test.ExpectEquality(t, h.dev.transactions[1], slave.Stopped)
	test.ExpectEquality(t, h.dec.Stats().Stops, 1)

	// a second rising edge of data while stopped is not another stop
	h.step(false, true)
	h.step(true, true)
	test.ExpectEquality(t, h.dec.Stats().Stops, 1)
}

func TestStartSuppressedAfterStop(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.stop()

	// start on the very next tick is not recognised
	h.step(false, true)
	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
	test.ExpectEquality(t, h.dec.Stats().Starts, 1)

	// but is recognised once the bus has been idle for a tick
	h.step(true, true)
	h.step(true, true)
	h.step(false, true)
	test.ExpectEquality(t, h.dec.State(), slave.Started)
	test.ExpectEquality(t, h.dec.Stats().Starts, 2)
}

func TestAddressMatch(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.send(0xa1)

	test.ExpectEquality(t, h.dec.State(), slave.Started)
	test.ExpectEquality(t, h.dec.ByteCount(), 1)

	dir, ok := h.dec.Direction()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, dir, i2c.Read)

	test.DemandEquality(t, len(h.bus.drives), 1)
	test.ExpectFailure(t, h.bus.drives[0])

	test.ExpectEquality(t, len(h.dev.transactions), 2)
	test.ExpectEquality(t, h.dev.transactions[1], slave.Started)
	test.ExpectEquality(t, h.dec.Stats().Acks, 1)
}

func TestAddressMismatch(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.send(0x03)

	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
	test.ExpectEquality(t, h.dec.ByteCount(), 0)
	test.ExpectEquality(t, len(h.bus.drives), 0)
	test.ExpectEquality(t, h.dec.Stats().Ignored, 1)

	_, ok := h.dec.Direction()
	test.ExpectFailure(t, ok)

	// the rest of the transaction is ignored
	h.send(0x55)
	h.send(0xaa)
	test.ExpectEquality(t, len(h.dev.written), 0)
	test.ExpectEquality(t, len(h.bus.drives), 0)
	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
}

func TestPayload(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.send(0xa0)
	h.send(0x12)
	h.send(0x34)
	h.send(0xfe)

	test.DemandEquality(t, len(h.dev.written), 3)
	test.ExpectEquality(t, h.dev.written[0], 0x12)
	test.ExpectEquality(t, h.dev.written[1], 0x34)
	test.ExpectEquality(t, h.dev.written[2], 0xfe)
	test.ExpectEquality(t, len(h.dev.read), 0)

	test.ExpectEquality(t, len(h.bus.drives), 4)
	for _, d := range h.bus.drives {
		test.ExpectFailure(t, d)
	}
	test.ExpectEquality(t, h.dec.State(), slave.Started)

	h.stop()
	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
	test.ExpectEquality(t, h.dev.transactions[len(h.dev.transactions)-1], slave.Stopped)
}

func TestPayloadRead(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.send(0xa1)
	h.send(0xff)
	test.DemandEquality(t, len(h.dev.read), 1)
	test.ExpectEquality(t, h.dev.read[0], 0xff)
	test.ExpectEquality(t, len(h.dev.written), 0)
}

func TestPayloadRejection(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.send(0xa0)

	h.dev.accept = false
	h.send(0x99)

	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
	test.DemandEquality(t, len(h.bus.drives), 2)
	test.ExpectFailure(t, h.bus.drives[0])
	test.ExpectSuccess(t, h.bus.drives[1])

	test.DemandEquality(t, len(h.dev.transactions), 3)
	test.ExpectEquality(t, h.dev.transactions[2], slave.Stopped)
	test.ExpectEquality(t, h.dec.Stats().Nacks, 1)

	// a stop from the master does not notify the device a second time
	h.stop()
	test.ExpectEquality(t, len(h.dev.transactions), 3)
}

func TestMidByteRestart(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()

	// first bit on the falling edge and three more on rising edges
	h.bit(true)
	h.bit(true)
	h.bit(true)
	h.step(true, false)
	h.step(true, true)
	test.DemandEquality(t, h.dec.State(), slave.ReceivingByte)
	test.DemandEquality(t, h.dec.BitIndex(), 3)

	h.dev.transactions = nil
	h.step(false, true)
	test.ExpectEquality(t, h.dec.State(), slave.Started)
	test.ExpectEquality(t, h.dec.ByteCount(), 0)
	test.DemandEquality(t, len(h.dev.transactions), 1)
	test.ExpectEquality(t, h.dev.transactions[0], slave.Started)

	// partial byte is discarded and the next address is decoded from scratch
	h.step(false, false)
	h.send(0xa0)
	test.ExpectEquality(t, h.dec.ByteCount(), 1)
	dir, ok := h.dec.Direction()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, dir, i2c.Write)
}

func TestRepeatedStart(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.send(0xa0)
	h.send(0x00)

	// repeated start from the low clock that follows the acknowledge slot
	h.step(true, false)
	h.step(true, true)
	h.start()
	h.send(0xa1)

	dir, ok := h.dec.Direction()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, dir, i2c.Read)
	test.ExpectEquality(t, h.dec.ByteCount(), 1)
	test.ExpectEquality(t, h.dec.Stats().Starts, 2)
}

func TestIdempotence(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.send(0xa0)
	h.step(false, false)

	state := h.dec.State()
	drives := len(h.bus.drives)
	transactions := len(h.dev.transactions)

	for range 10 {
		h.dec.Tick(false, false, false, false)
	}
	for range 10 {
		h.dec.Tick(true, true, true, true)
	}

	test.ExpectEquality(t, h.dec.State(), state)
	test.ExpectEquality(t, len(h.bus.drives), drives)
	test.ExpectEquality(t, len(h.dev.transactions), transactions)
	test.ExpectEquality(t, len(h.dev.written), 0)
}

func TestAnomaly(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	h.bit(false)

	// data rises on the same tick as the clock
	h.step(true, true)
	test.ExpectEquality(t, h.dec.State(), slave.ReceivingByte)
	test.ExpectEquality(t, h.dec.BitIndex(), 1)
	test.ExpectEquality(t, h.dec.Stats().Anomalies, 1)
}

func TestAcknowledgeIsNotAnomaly(t *testing.T) {
	h := newHarness(t, 0x50)
	h.start()
	for i := 7; i >= 0; i-- {
		h.bit(0x20>>i&0x01 == 0x01)
	}

	// another device acknowledges the address on the rising edge of the
	// ninth clock
	h.step(true, false)
	h.step(false, true)
	h.step(false, false)

	test.ExpectEquality(t, h.dec.State(), slave.Stopped)
	test.ExpectEquality(t, h.dec.Stats().Ignored, 1)
	test.ExpectEquality(t, h.dec.Stats().Anomalies, 0)
}

func TestDiagnostics(t *testing.T) {
	b := &fakeBus{}
	r := &recorder{accept: true}
	w := &sink{}

	dec, err := slave.NewDecoder(b, r.funcs(0x50), w)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w.lines[0], "State: Stopped")

	dec.Tick(false, true, true, true)
	test.ExpectSuccess(t, w.contains("Rx START"))
	test.ExpectEquality(t, dec.String(), "recorder 0x50: Started")

	snap := dec.Snapshot()
	dec.Tick(true, true, false, true)
	test.ExpectSuccess(t, w.contains("Rx STOP"))
	test.ExpectEquality(t, snap.State(), slave.Started)
	test.ExpectEquality(t, dec.State(), slave.Stopped)
}

type sink struct {
	lines []string
}

func (s *sink) Log(detail string) {
	s.lines = append(s.lines, detail)
}

func (s *sink) contains(detail string) bool {
	for _, l := range s.lines {
		if l == detail {
			return true
		}
	}
	return false
}
