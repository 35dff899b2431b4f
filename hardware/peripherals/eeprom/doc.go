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

// Package eeprom implements a 24LC-series serial EEPROM on the simulated bus.
// It is the same memory as found in the SaveKey and AtariVox peripherals.
//
// A write transaction begins with two address bytes, high byte first. Any
// further bytes are written to memory starting at that address. A read
// transaction reads from the current address. Both reads and writes advance
// the address but the address never leaves the current page: a sequential
// access past the end of a page wraps around to the start of the same page.
//
// The contents of memory are written to disk at the end of every transaction
// if a file has been specified.
package eeprom
