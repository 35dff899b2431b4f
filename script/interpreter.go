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

package script

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/hardware/i2c"
	"github.com/jetsetilly/i2csim/hardware/i2c/master"
	"github.com/jetsetilly/i2csim/hexdump"
)

// Interpreter executes commands with a bus master. The result of each command
// is written to the output.
type Interpreter struct {
	master *master.Master
	output io.Writer
}

// NewInterpreter is the preferred method of initialisation for the
// Interpreter type.
func NewInterpreter(m *master.Master, output io.Writer) *Interpreter {
	return &Interpreter{
		master: m,
		output: output,
	}
}

func ackString(ack bool) string {
	if ack {
		return "ACK"
	}
	return "NACK"
}

// parseByte accepts a hex value with or without the 0x prefix.
func parseByte(s string) (uint8, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("not a hex byte: %s", s)
	}
	return uint8(v), nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("not a count: %s", s)
	}
	return n, nil
}

// Exec runs a single command. Errors are returned for invalid commands only.
// Protocol outcomes, including a NACK, are written to the output.
func (in *Interpreter) Exec(ln Line) error {
	err := in.exec(ln)
	if err != nil {
		return curated.Errorf(ScriptError, fmt.Sprintf("line %d: %v", ln.Number, err))
	}
	return nil
}

func (in *Interpreter) exec(ln Line) error {
	tokens := strings.Fields(ln.Entry)
	if len(tokens) == 0 {
		return nil
	}

	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "start":
		if len(args) > 0 {
			return fmt.Errorf("start takes no arguments")
		}
		in.master.Start()
		fmt.Fprintln(in.output, "START")

	case "stop":
		if len(args) > 0 {
			return fmt.Errorf("stop takes no arguments")
		}
		in.master.Stop()
		fmt.Fprintln(in.output, "STOP")

	case "write":
		if len(args) == 0 {
			return fmt.Errorf("write needs at least one byte")
		}
		data := make([]uint8, 0, len(args))
		for _, a := range args {
			v, err := parseByte(a)
			if err != nil {
				return err
			}
			data = append(data, v)
		}
		for _, v := range data {
			fmt.Fprintf(in.output, "write %#02x %s\n", v, ackString(in.master.SendByte(v)))
		}

	case "read":
		if len(args) == 0 || len(args) > 2 {
			return fmt.Errorf("read needs a count")
		}
		n, err := parseCount(args[0])
		if err != nil {
			return err
		}
		nack := false
		if len(args) == 2 {
			if strings.ToLower(args[1]) != "nack" {
				return fmt.Errorf("unknown read option: %s", args[1])
			}
			nack = true
		}
		data := make([]byte, n)
		for i := range data {
			data[i] = in.master.ReceiveByte(!(nack && i == n-1))
		}
		io.WriteString(in.output, hexdump.Dump(0, data, nil))

	case "tx":
		return in.tx(args)

	case "scan":
		if len(args) > 0 {
			return fmt.Errorf("scan takes no arguments")
		}
		WriteScanTable(in.output, in.master.Scan())

	case "idle":
		if len(args) != 1 {
			return fmt.Errorf("idle needs a count")
		}
		n, err := parseCount(args[0])
		if err != nil {
			return err
		}
		in.master.Bus().Idle(n)

	default:
		return fmt.Errorf("unknown command: %s", tokens[0])
	}

	return nil
}

func (in *Interpreter) tx(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tx needs an address")
	}

	addr, err := parseByte(args[0])
	if err != nil {
		return err
	}
	if !i2c.Address(addr).Valid() {
		return fmt.Errorf("not a 7-bit address: %#02x", addr)
	}

	var w []byte
	var r []byte

	for _, a := range args[1:] {
		switch {
		case strings.HasPrefix(a, "w:"):
			w, err = hex.DecodeString(strings.TrimPrefix(a, "w:"))
			if err != nil {
				return fmt.Errorf("not a hex string: %s", a)
			}
		case strings.HasPrefix(a, "r:"):
			n, err := parseCount(strings.TrimPrefix(a, "r:"))
			if err != nil {
				return err
			}
			r = make([]byte, n)
		default:
			return fmt.Errorf("unknown tx argument: %s", a)
		}
	}

	err = in.master.Tx(uint16(addr), w, r)
	if err != nil {
		if curated.Is(err, master.NackError) {
			fmt.Fprintf(in.output, "tx %s NACK: %v\n", i2c.Address(addr), err)
			return nil
		}
		return err
	}

	fmt.Fprintf(in.output, "tx %s ACK\n", i2c.Address(addr))
	if len(r) > 0 {
		io.WriteString(in.output, hexdump.Dump(0, r, nil))
	}

	return nil
}

// Run executes every command in the queue. Execution stops at the first
// invalid command.
func (in *Interpreter) Run(q *Queue) error {
	for q.More() {
		ln, _ := q.Next()
		if err := in.Exec(ln); err != nil {
			return err
		}
	}
	return nil
}

// WriteScanTable writes the addresses in a table of sixteen columns. Addresses
// not in the list are shown as dashes.
func WriteScanTable(output io.Writer, found []i2c.Address) {
	present := make(map[i2c.Address]bool)
	for _, a := range found {
		present[a] = true
	}

	s := strings.Builder{}
	s.WriteString("   ")
	for i := range 16 {
		s.WriteString(fmt.Sprintf("%02X ", i))
	}
	for a := i2c.Address(0); a <= i2c.MaxAddress; a++ {
		if a&15 == 0 {
			s.WriteString(fmt.Sprintf("\n%02x ", uint8(a)))
		}
		if present[a] {
			s.WriteString(fmt.Sprintf("%02X ", uint8(a)))
		} else {
			s.WriteString("-- ")
		}
	}
	s.WriteString("\n")

	io.WriteString(output, s.String())
}
