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

// Package monitor single-steps a script through the bench and draws the state
// of the bus after every round.
//
// The keys recognised by the monitor are:
//
//	space	step a single round of the bus
//	b	run to the end of the current script line
//	r	run the rest of the script without stopping
//	q	quit
//
// Keys are read with the KeyReader interface. The Terminal type is a
// KeyReader that puts a posix terminal into cbreak mode so that single
// keypresses are delivered without waiting for the return key.
package monitor
