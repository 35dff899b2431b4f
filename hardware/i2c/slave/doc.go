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

// Package slave implements the protocol decoder for a simulated device on the
// two-wire bus.
//
// A Decoder is created with NewDecoder() and is bound to one bus and to one
// Device. The Device supplies the 7-bit address and decides what to do with
// the bytes it is given. The Decoder itself deals only with the line levels
// and the framing of the protocol.
//
// Each tick of the bus is classified as exactly one event. In order of
// priority:
//
//	START		SDA falls while SCL is held high
//	STOP		SDA rises while SCL is held high
//	first bit	SCL falls while the decoder is in the Started state
//	bit		SCL rises while the decoder is receiving a byte
//	byte		SCL rises after the seventh bit has been captured
//
// The first bit of a byte is captured on the falling clock edge that begins
// the byte. The remaining bits are captured on the rising edges that follow.
// The eighth rising edge completes the byte and the decoder answers with an
// ACK or NACK by driving SDA through the bus.
//
// The event of the previous tick is remembered. A START is not recognised on
// the tick immediately after a STOP and the first bit is not recognised on the
// tick immediately after a START, a STOP or a completed byte.
//
// The first byte after a START is the address byte. If the address is not for
// the device, the decoder returns to the Stopped state without driving the
// line and ignores everything until the next START.
package slave
