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

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/i2csim/capture"
	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/hexdump"
	"github.com/jetsetilly/i2csim/monitor"
	"github.com/jetsetilly/i2csim/script"
)

// RunCmd runs a scenario script against the bench.
type RunCmd struct {
	Script string `arg:"" name:"script" help:"Script file." type:"existingfile"`
}

func (l *RunCmd) Run(c *Context) error {
	var q script.Queue
	if err := q.Load(l.Script); err != nil {
		return err
	}

	in := script.NewInterpreter(c.bench.Master, c.output)
	if err := in.Run(&q); err != nil {
		return err
	}

	io.WriteString(c.output, c.bench.Stats())
	return nil
}

// ScanCmd probes every address on the bus.
type ScanCmd struct {
}

func (l *ScanCmd) Run(c *Context) error {
	fmt.Fprintf(c.output, "Detected I2C devices:\n")
	script.WriteScanTable(c.output, c.bench.Master.Scan())
	return nil
}

// TxfrCmd performs a single transfer with the master.
type TxfrCmd struct {
	Addr int `arg:"" name:"addr" help:"I2C device address" type:"hex"`

	Write string `optional:"" help:"Hex string to write to device"`
	Read  int    `optional:"" help:"Number of bytes to read back"`
}

func (l *TxfrCmd) Run(c *Context) error {
	wrBuf, err := hex.DecodeString(l.Write)
	if err != nil {
		return err
	}
	if l.Read < 0 {
		return fmt.Errorf("read count must not be negative")
	}

	rdBuf := make([]byte, l.Read)
	err = c.bench.Master.Tx(uint16(l.Addr), wrBuf, rdBuf)
	if err != nil {
		return err
	}

	io.WriteString(c.output, hexdump.Dump(0, rdBuf, nil))
	return nil
}

// ReplayCmd replays a logic capture through the devices of the bench.
type ReplayCmd struct {
	File string `arg:"" name:"file" help:"WAV or MP3 capture." type:"existingfile"`
}

func (l *ReplayCmd) Run(c *Context) error {
	levels, err := capture.Load(c.env, l.File)
	if err != nil {
		return err
	}

	capture.Replay(c.bench.Bus, levels)

	fmt.Fprintf(c.output, "replayed %d rounds\n", len(levels))
	io.WriteString(c.output, c.bench.Stats())
	return nil
}

// MonitorCmd single-steps a scenario script in the terminal.
type MonitorCmd struct {
	Script string `arg:"" name:"script" help:"Script file." type:"existingfile"`
}

func (l *MonitorCmd) Run(c *Context) error {
	var q script.Queue
	if err := q.Load(l.Script); err != nil {
		return err
	}

	term, err := monitor.NewTerminal(os.Stdin)
	if err != nil {
		return err
	}
	if err := term.CBreakMode(); err != nil {
		return err
	}
	defer term.CanonicalMode()

	return monitor.NewMonitor(c.bench, term, c.output).Run(&q)
}

// EEPROMCmd dumps the EEPROM image. Bytes that have not been saved to disk
// are marked.
type EEPROMCmd struct {
	Offset int `optional:"" help:"First address to dump." type:"hex" default:"0"`
	Length int `optional:"" help:"Number of bytes to dump." type:"hex" default:"100"`
}

func (l *EEPROMCmd) Run(c *Context) error {
	ee := c.bench.EEPROM
	if ee == nil {
		return curated.Errorf("eeprom: %v", "not attached to the bus")
	}

	size := len(ee.Memory.Data)
	if l.Offset < 0 || l.Offset >= size {
		return fmt.Errorf("offset out of range: %#x", l.Offset)
	}
	end := min(size, l.Offset+max(l.Length, 0))

	mark := make([]bool, end-l.Offset)
	for i := range mark {
		mark[i] = ee.Memory.IsDirty(uint16(l.Offset + i))
	}

	fmt.Fprintf(c.output, "%s\n", ee)
	io.WriteString(c.output, hexdump.Dump(l.Offset, ee.Memory.Data[l.Offset:end], mark))
	return nil
}
