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

// Package hexdump formats memory in the style of the hexdump -C command. Bytes
// can be marked, in which case they are printed in red when the output is a
// terminal.
package hexdump

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Width is the number of bytes on each line of output.
const Width = 32

// Dump returns a string with the formatted data. The offset is the address of
// the first byte of data. The mark slice can be nil. If it is not nil it must
// be at least the same length as data.
func Dump(offset int, data []byte, mark []bool) string {
	s := strings.Builder{}
	red := color.New(color.FgRed)

	for len(data) > 0 {
		l := min(len(data), Width)
		work := data[:l]
		data = data[l:]
		var workMark []bool
		if mark != nil {
			workMark = mark[:l]
			mark = mark[l:]
		}

		var workHex strings.Builder
		var workASCII strings.Builder
		for i := range Width {
			if i >= len(work) {
				workHex.WriteString("   ")
				workASCII.WriteString(" ")
			} else {
				m := work[i]
				delta := workMark != nil && workMark[i]

				if delta {
					workHex.WriteString(red.Sprintf("%02x ", m))
				} else {
					workHex.WriteString(fmt.Sprintf("%02x ", m))
				}

				if m < 32 || m > 126 {
					m = '.'
				}
				if delta {
					workASCII.WriteString(red.Sprintf("%c", m))
				} else {
					workASCII.WriteString(fmt.Sprintf("%c", m))
				}
			}
			if i%8 == 7 {
				workHex.WriteString(" ")
			}
		}

		s.WriteString(fmt.Sprintf("%08x  %s|%s|\n", offset, workHex.String(), workASCII.String()))
		offset += l
	}

	return s.String()
}
