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
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/jetsetilly/i2csim/curated"
)

// ScriptError is returned when a script can not be loaded or contains an
// invalid command.
const ScriptError = "script: %v"

// Line is a single command from a script.
type Line struct {
	Entry string

	// the line number in the original input. lines that came from a
	// semi-colon separated list share the same number
	Number int
}

func (ln Line) String() string {
	return ln.Entry
}

// Queue normalises input into commands and dishes out those commands one at a
// time.
type Queue struct {
	lines []Line
}

// More returns true if there are more commands in the queue.
func (q *Queue) More() bool {
	return len(q.lines) > 0
}

// Len returns the number of commands in the queue.
func (q *Queue) Len() int {
	return len(q.lines)
}

// Next command in the queue.
func (q *Queue) Next() (Line, bool) {
	if len(q.lines) > 0 {
		ln := q.lines[0]
		q.lines = q.lines[1:]
		return ln, true
	}
	return Line{}, false
}

// Push input into the queue. Input is normalised into separate commands.
func (q *Queue) Push(input string) {
	// replace windows and mac line endings with unix line endings
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	n := 0
	for l := range strings.SplitSeq(input, "\n") {
		n++

		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "#") {
			continue
		}

		// commands can be separated by semi-colons as well as newlines
		for s := range strings.SplitSeq(l, ";") {
			s = strings.TrimSpace(s)
			if len(s) > 0 {
				q.lines = append(q.lines, Line{Entry: s, Number: n})
			}
		}
	}
}

// Load script into queue.
func (q *Queue) Load(filename string) error {
	s, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return curated.Errorf(ScriptError, "no such file: "+filename)
		}
		return curated.Errorf(ScriptError, err)
	}

	q.Push(string(s))

	return nil
}
