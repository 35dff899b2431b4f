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

// Package i2c contains the types shared by the simulated two-wire bus and the
// devices attached to it.
//
// The Address type is a 7-bit device address. The address byte that begins a
// transaction is the address shifted one bit to the left with the low bit
// indicating the direction of the transfer:
//
//	bit  7  6  5  4  3  2  1  0
//	    A6 A5 A4 A3 A2 A1 A0 R/W
//
// A low bit of zero is a write (the master sends data to the device) and a low
// bit of one is a read.
//
// The Sample type is the level of both lines on one tick of the bus, along
// with the levels on the previous tick. Conditions on the bus are derived from
// the edges in a Sample:
//
//	START	SDA falls while SCL is high on both ticks
//	STOP	SDA rises while SCL is high on both ticks
//
// The Trace type records the recent activity of a single line.
package i2c
