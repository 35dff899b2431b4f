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

package monitor_test

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jetsetilly/i2csim/bench"
	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/preferences"
	"github.com/jetsetilly/i2csim/monitor"
	"github.com/jetsetilly/i2csim/script"
	"github.com/jetsetilly/i2csim/test"
)

type keys struct {
	pressed []rune
	err     error
}

func (k *keys) ReadKey() (rune, error) {
	if len(k.pressed) == 0 {
		if k.err != nil {
			return 0, k.err
		}
		return 0, io.EOF
	}
	r := k.pressed[0]
	k.pressed = k.pressed[1:]
	return r, nil
}

func newMonitor(t *testing.T, pressed string) (*monitor.Monitor, *bench.Bench, *keys, *test.CompareWriter) {
	t.Helper()
	color.NoColor = true

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment("monitor test", p)
	test.DemandSuccess(t, err)
	bn, err := bench.NewBench(env)
	test.DemandSuccess(t, err)

	k := &keys{pressed: []rune(pressed)}
	w := &test.CompareWriter{}
	return monitor.NewMonitor(bn, k, w), bn, k, w
}

func TestRun(t *testing.T) {
	mon, bn, _, w := newMonitor(t, "r")

	var q script.Queue
	q.Push("tx 20 w:0f; tx 20 w:f0")
	test.ExpectSuccess(t, mon.Run(&q))

	test.ExpectEquality(t, bn.Expander.Pins, 0xf0)
	test.ExpectSuccess(t, w.Contains("line 1: tx 20 w:0f"))
	test.ExpectSuccess(t, w.Contains("line 2: tx 20 w:f0"))
	test.ExpectSuccess(t, w.Contains("tx 0x20 ACK"))
	test.ExpectSuccess(t, w.Contains("SDA "))
	test.ExpectSuccess(t, w.Contains("SCL "))

	// one draw for the first round and one when the script has finished
	test.ExpectEquality(t, strings.Count(w.String(), "[space] step"), 2)
}

func TestQuit(t *testing.T) {
	mon, bn, _, _ := newMonitor(t, "q")

	var q script.Queue
	q.Push("tx 20 w:0f; tx 20 w:f0")
	test.ExpectSuccess(t, mon.Run(&q))

	// the first line is completed
	test.ExpectEquality(t, bn.Expander.Pins, 0x0f)
	test.ExpectEquality(t, q.Len(), 1)
}

func TestEndOfInput(t *testing.T) {
	mon, bn, _, _ := newMonitor(t, "")

	var q script.Queue
	q.Push("tx 20 w:0f; tx 20 w:f0")
	test.ExpectSuccess(t, mon.Run(&q))
	test.ExpectEquality(t, bn.Expander.Pins, 0x0f)
}

func TestStep(t *testing.T) {
	mon, _, _, w := newMonitor(t, "   ")

	var q script.Queue
	q.Push("start")
	test.ExpectSuccess(t, mon.Run(&q))

	test.ExpectSuccess(t, w.Contains("[round 1]"))
	test.ExpectSuccess(t, w.Contains("[round 2]"))
	test.ExpectSuccess(t, w.Contains("[round 3]"))
	test.ExpectFailure(t, w.Contains("[round 4]"))
	test.ExpectEquality(t, strings.Count(w.String(), "[space] step"), 4)
}

func TestEndOfLine(t *testing.T) {
	mon, _, _, w := newMonitor(t, "b")

	var q script.Queue
	q.Push("start; stop")
	test.ExpectSuccess(t, mon.Run(&q))

	test.ExpectEquality(t, strings.Count(w.String(), "line 1: start"), 1)
	test.ExpectEquality(t, strings.Count(w.String(), "line 2: stop"), 2)
}

func TestKeyError(t *testing.T) {
	mon, _, k, _ := newMonitor(t, "")
	k.err = errors.New("broken terminal")

	var q script.Queue
	q.Push("start")
	err := mon.Run(&q)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, err.Error(), "broken terminal")
}

func TestInvalidScript(t *testing.T) {
	mon, _, _, _ := newMonitor(t, "r")

	var q script.Queue
	q.Push("start; bogus")
	err := mon.Run(&q)
	test.ExpectSuccess(t, curated.Is(err, script.ScriptError))
}
