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

package master_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/bus"
	"github.com/jetsetilly/i2csim/hardware/i2c/master"
	"github.com/jetsetilly/i2csim/hardware/i2c/slave"
	"github.com/jetsetilly/i2csim/hardware/preferences"
	"github.com/jetsetilly/i2csim/test"

	periphi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

type recorder struct {
	transactions []slave.State
	written      []uint8
	read         int
	limit        int
}

func (r *recorder) funcs(addr i2c.Address) slave.Funcs {
	return slave.Funcs{
		Addr:  addr,
		Label: "recorder",
		Transaction: func(s slave.State) {
			r.transactions = append(r.transactions, s)
		},
		Read: func(b uint8) bool {
			r.read++
			return true
		},
		Write: func(b uint8) bool {
			if r.limit > 0 && len(r.written) >= r.limit {
				return false
			}
			r.written = append(r.written, b)
			return true
		},
	}
}

func newMaster(t *testing.T) (*master.Master, *bus.Bus) {
	t.Helper()
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment("master test", p)
	test.DemandSuccess(t, err)
	b := bus.NewBus(env)
	return master.NewMaster(env, b), b
}

func attach(t *testing.T, b *bus.Bus, addr i2c.Address) (*slave.Decoder, *recorder) {
	t.Helper()
	r := &recorder{}
	dec, err := slave.NewDecoder(b, r.funcs(addr), nil)
	test.DemandSuccess(t, err)
	return dec, r
}

func TestWrite(t *testing.T) {
	m, b := newMaster(t)
	dec, r := attach(t, b, 0x50)

	err := m.Tx(0x50, []byte{0x01, 0x02, 0xa5}, nil)
	test.ExpectSuccess(t, err)

	test.DemandEquality(t, len(r.written), 3)
	test.ExpectEquality(t, r.written[0], 0x01)
	test.ExpectEquality(t, r.written[1], 0x02)
	test.ExpectEquality(t, r.written[2], 0xa5)

	test.ExpectEquality(t, dec.State(), slave.Stopped)
	test.ExpectEquality(t, r.transactions[len(r.transactions)-1], slave.Stopped)

	st := dec.Stats()
	test.ExpectEquality(t, st.Starts, 1)
	test.ExpectEquality(t, st.Stops, 1)
	test.ExpectEquality(t, st.Acks, 4)
	test.ExpectEquality(t, st.Anomalies, 0)

	// the bus is left idle
	test.ExpectSuccess(t, b.SDA())
	test.ExpectSuccess(t, b.SCL())
}

func TestConsecutiveTransactions(t *testing.T) {
	m, b := newMaster(t)
	dec, r := attach(t, b, 0x50)

	for i := range 5 {
		test.ExpectSuccess(t, m.Tx(0x50, []byte{uint8(i)}, nil))
	}
	test.ExpectEquality(t, len(r.written), 5)
	test.ExpectEquality(t, r.written[4], 0x04)
	test.ExpectEquality(t, dec.Stats().Starts, 5)
	test.ExpectEquality(t, dec.Stats().Stops, 5)
}

func TestRead(t *testing.T) {
	m, b := newMaster(t)
	_, r := attach(t, b, 0x50)

	buf := make([]byte, 4)
	test.ExpectSuccess(t, m.Tx(0x50, nil, buf))
	test.ExpectEquality(t, r.read, 4)
	test.ExpectEquality(t, len(r.written), 0)
	for _, v := range buf {
		test.ExpectEquality(t, v, 0xff)
	}
}

func TestWriteThenRead(t *testing.T) {
	m, b := newMaster(t)
	dec, r := attach(t, b, 0x50)

	buf := make([]byte, 2)
	test.ExpectSuccess(t, m.Tx(0x50, []byte{0x10, 0x20}, buf))
	test.ExpectEquality(t, len(r.written), 2)
	test.ExpectEquality(t, r.read, 2)

	// repeated start
	test.ExpectEquality(t, dec.Stats().Starts, 2)
	test.ExpectEquality(t, dec.Stats().Stops, 1)
}

func TestNack(t *testing.T) {
	m, b := newMaster(t)
	dec, r := attach(t, b, 0x50)

	err := m.Tx(0x51, []byte{0x00}, nil)
	test.ExpectSuccess(t, curated.Is(err, master.NackError))
	test.ExpectEquality(t, dec.Stats().Ignored, 1)

	r.limit = 2
	err = m.Tx(0x50, []byte{0x00, 0x01, 0x02, 0x03}, nil)
	test.ExpectSuccess(t, curated.Is(err, master.NackError))
	test.ExpectEquality(t, len(r.written), 2)
	test.ExpectEquality(t, dec.Stats().Nacks, 1)
	test.ExpectEquality(t, dec.State(), slave.Stopped)

	// the bus recovers for the next transaction
	r.limit = 0
	test.ExpectSuccess(t, m.Tx(0x50, []byte{0xee}, nil))
	test.ExpectEquality(t, r.written[len(r.written)-1], 0xee)
}

func TestAddress(t *testing.T) {
	m, _ := newMaster(t)
	err := m.Tx(0x80, nil, nil)
	test.ExpectSuccess(t, curated.Is(err, master.AddressError))
}

func TestScan(t *testing.T) {
	m, b := newMaster(t)
	attach(t, b, 0x20)
	attach(t, b, 0x50)
	attach(t, b, 0x68)

	found := m.Scan()
	test.DemandEquality(t, len(found), 3)
	test.ExpectEquality(t, found[0], 0x20)
	test.ExpectEquality(t, found[1], 0x50)
	test.ExpectEquality(t, found[2], 0x68)
}

func TestSharedBus(t *testing.T) {
	m, b := newMaster(t)
	_, first := attach(t, b, 0x20)
	_, second := attach(t, b, 0x21)

	test.ExpectSuccess(t, m.Tx(0x21, []byte{0x33}, nil))
	test.ExpectSuccess(t, m.Tx(0x20, []byte{0x44}, nil))

	test.DemandEquality(t, len(first.written), 1)
	test.DemandEquality(t, len(second.written), 1)
	test.ExpectEquality(t, first.written[0], 0x44)
	test.ExpectEquality(t, second.written[0], 0x33)
}

func TestSharedBusAnomalies(t *testing.T) {
	m, b := newMaster(t)
	first, r := attach(t, b, 0x50)
	second, _ := attach(t, b, 0x20)

	test.ExpectSuccess(t, m.Tx(0x50, []byte{0x01, 0x02}, nil))
	test.ExpectEquality(t, len(r.written), 2)

	test.ExpectEquality(t, first.Stats().Anomalies, 0)
	test.ExpectEquality(t, second.Stats().Anomalies, 0)
	test.ExpectEquality(t, second.Stats().Ignored, 1)

	// the device registered first sees the acknowledge of the second
	test.ExpectSuccess(t, m.Tx(0x20, []byte{0x03}, nil))
	test.ExpectEquality(t, first.Stats().Anomalies, 0)
	test.ExpectEquality(t, second.Stats().Anomalies, 0)
}

func TestPeriph(t *testing.T) {
	m, b := newMaster(t)
	_, r := attach(t, b, 0x50)

	test.ExpectSuccess(t, m.SetSpeed(400*physic.KiloHertz))
	test.ExpectFailure(t, m.SetSpeed(0))

	dev := &periphi2c.Dev{Bus: m, Addr: 0x50}
	test.ExpectSuccess(t, dev.Tx([]byte{0x01, 0x02}, nil))
	test.ExpectEquality(t, len(r.written), 2)

	test.DemandSuccess(t, m.Register("i2csim-test"))
	bc, err := i2creg.Open("i2csim-test")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, bc.String(), m.String())

	test.ExpectSuccess(t, bc.Tx(0x50, []byte{0x03}, nil))
	test.ExpectEquality(t, len(r.written), 3)

	test.ExpectSuccess(t, m.Close())
	test.ExpectFailure(t, m.Close())
	test.ExpectSuccess(t, curated.Is(m.Tx(0x50, nil, nil), master.ClosedError))
}

func TestTinygo(t *testing.T) {
	m, b := newMaster(t)
	_, r := attach(t, b, 0x50)

	var i2cbus drivers.I2C = m
	test.ExpectSuccess(t, i2cbus.Tx(0x50, []byte{0x7f}, nil))
	test.DemandEquality(t, len(r.written), 1)
	test.ExpectEquality(t, r.written[0], 0x7f)
}
