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

package i2c

import "fmt"

// Address is a 7-bit device address.
type Address uint8

// MaxAddress is the largest valid 7-bit address.
const MaxAddress Address = 0x7f

// Direction of data transfer, encoded in the low bit of the address byte.
type Direction int

// List of valid Direction values.
const (
	Write Direction = iota
	Read
)

func (d Direction) String() string {
	switch d {
	case Write:
		return "write"
	case Read:
		return "read"
	}
	return "unknown"
}

func (a Address) String() string {
	return fmt.Sprintf("%#02x", uint8(a))
}

// Valid returns true if the address fits in seven bits.
func (a Address) Valid() bool {
	return a <= MaxAddress
}

// WriteFrame returns the address byte that begins a write to the device.
func (a Address) WriteFrame() uint8 {
	return uint8(a) << 1
}

// ReadFrame returns the address byte that begins a read from the device.
func (a Address) ReadFrame() uint8 {
	return uint8(a)<<1 | 0x01
}

// Extract returns the 7-bit address and the direction of a received address
// byte.
func Extract(b uint8) (Address, Direction) {
	if b&0x01 == 0x01 {
		return Address(b >> 1), Read
	}
	return Address(b >> 1), Write
}

// Matches returns true if the address byte is for this address. The direction
// encoded in the address byte is returned whether the address matches or not.
func (a Address) Matches(b uint8) (bool, Direction) {
	ext, dir := Extract(b)
	return ext == a, dir
}
