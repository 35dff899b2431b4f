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

package monitor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/inancgumus/screen"
	"github.com/jetsetilly/i2csim/bench"
	"github.com/jetsetilly/i2csim/logger"
	"github.com/jetsetilly/i2csim/script"
)

// KeyReader returns the next key pressed by the user.
type KeyReader interface {
	ReadKey() (rune, error)
}

type mode int

const (
	stepping mode = iota
	toLineEnd
	running
	quitting
)

// number of lines of script output and log shown below the traces
const tailLength = 5

// Monitor runs a script through the bench, one round at a time.
type Monitor struct {
	bench  *bench.Bench
	keys   KeyReader
	output io.Writer

	interp *script.Interpreter

	// output of the interpreter. only the most recent lines are drawn
	results strings.Builder

	mode mode
	line script.Line
	err  error

	// number of rounds since the start of the current line
	rounds int

	sda func(a ...any) string
	scl func(a ...any) string
	hdr func(a ...any) string
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(bn *bench.Bench, keys KeyReader, output io.Writer) *Monitor {
	mon := &Monitor{
		bench:  bn,
		keys:   keys,
		output: output,
		sda:    color.New(color.FgGreen).SprintFunc(),
		scl:    color.New(color.FgCyan).SprintFunc(),
		hdr:    color.New(color.Bold).SprintFunc(),
	}
	mon.interp = script.NewInterpreter(bn.Master, &mon.results)
	bn.Bus.AddObserver(mon.observe)
	return mon
}

// observe is called by the bus at the end of every round.
func (mon *Monitor) observe(_, _ bool) {
	mon.rounds++
	if mon.mode != stepping {
		return
	}

	mon.draw()

	for {
		k, err := mon.keys.ReadKey()
		if err != nil {
			if err != io.EOF {
				mon.err = err
			}
			mon.mode = quitting
			return
		}

		switch k {
		case ' ':
			return
		case 'b', 'B':
			mon.mode = toLineEnd
			return
		case 'r', 'R':
			mon.mode = running
			return
		case 'q', 'Q':
			mon.mode = quitting
			return
		}
	}
}

// Run every line in the queue. A line that has started is always completed
// but no new line is started after the quit key has been pressed.
func (mon *Monitor) Run(q *script.Queue) error {
	for q.More() && mon.mode != quitting {
		mon.line, _ = q.Next()
		mon.rounds = 0

		if err := mon.interp.Exec(mon.line); err != nil {
			return err
		}

		if mon.mode == toLineEnd {
			mon.mode = stepping
		}
	}

	mon.draw()

	return mon.err
}

func (mon *Monitor) draw() {
	if f, ok := mon.output.(*os.File); ok && f == os.Stdout {
		screen.Clear()
		screen.MoveTopLeft()
	}

	s := strings.Builder{}

	s.WriteString(mon.hdr(fmt.Sprintf("line %d: %s", mon.line.Number, mon.line.Entry)))
	s.WriteString(fmt.Sprintf(" [round %d]\n\n", mon.rounds))

	sda, scl := mon.bench.Bus.Traces()
	s.WriteString(fmt.Sprintf("%s %s\n", sda.Label, mon.sda(sda.Waveform('‾', '_'))))
	s.WriteString(fmt.Sprintf("%s %s\n\n", scl.Label, mon.scl(scl.Waveform('‾', '_'))))

	s.WriteString(mon.bench.String())
	s.WriteString("\n\n")

	for _, l := range tail(mon.results.String(), tailLength) {
		s.WriteString(l)
		s.WriteString("\n")
	}
	s.WriteString("\n")

	io.WriteString(mon.output, s.String())
	logger.Tail(mon.output, tailLength)

	io.WriteString(mon.output, "\n[space] step  [b] end of line  [r] run  [q] quit\n")
}

// tail returns the last n lines of s.
func tail(s string, n int) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	l := strings.Split(s, "\n")
	if len(l) > n {
		l = l[len(l)-n:]
	}
	return l
}
