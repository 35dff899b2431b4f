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

package logger

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// Colorizer applies basic coloring rules to logging output. It is intended to
// be used as the argument to SetEcho().
//
// The tag of each entry is printed in cyan. Entries that mention a NACK or an
// error are printed in red and acknowledgements in green.
type Colorizer struct {
	out io.Writer

	tag  *color.Color
	bad  *color.Color
	good *color.Color
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{
		out:  out,
		tag:  color.New(color.FgCyan),
		bad:  color.New(color.FgRed),
		good: color.New(color.FgGreen),
	}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	var n int

	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		var s string

		tag, detail, ok := strings.Cut(l, ": ")
		if !ok {
			s = l
		} else {
			switch {
			case strings.Contains(detail, "NACK") || strings.Contains(detail, "error"):
				detail = c.bad.Sprint(detail)
			case strings.Contains(detail, "ACK"):
				detail = c.good.Sprint(detail)
			}
			s = c.tag.Sprint(tag) + ": " + detail
		}

		m, err := io.WriteString(c.out, s+"\n")
		n += m
		if err != nil {
			return n, err
		}
	}

	// report the length of the original data. the number of bytes written to
	// the underlying writer includes the colour escape sequences
	return len(p), nil
}
