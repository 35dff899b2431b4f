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

// Package script runs scenario scripts against the master of the simulated
// bus.
//
// A script is a list of commands separated by newlines or semi-colons. Lines
// beginning with the # symbol are comments. The commands are:
//
//	start			START condition (a repeated START if a transaction is open)
//	stop			STOP condition
//	write HEX..		send bytes, reporting the ACK or NACK of each
//	read N [nack]		receive N bytes. the last byte is acknowledged if nack is not given
//	tx ADDR [w:HEX] [r:N]	a complete transaction with a device
//	scan			probe all addresses and print a table of devices
//	idle N			run the bus for N rounds without changing the lines
//
// Hex values can be written with or without the 0x prefix. The w: argument of
// the tx command is a string of hex digits with no spaces, in the manner of the
// encoding/hex package.
package script
