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

// Sink is a single text-message sink. It is used to give the protocol decoder
// access to the central log under a fixed tag.
type Sink struct {
	perm Permission
	tag  string
}

// NewSink is the preferred method of initialisation for the Sink type.
func NewSink(perm Permission, tag string) Sink {
	return Sink{
		perm: perm,
		tag:  tag,
	}
}

// Log adds detail to the central log with the tag of the sink.
func (s Sink) Log(detail string) {
	central.Log(s.perm, s.tag, detail)
}
