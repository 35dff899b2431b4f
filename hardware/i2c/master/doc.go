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

// Package master implements a bit-banged bus master for the simulated bus.
//
// The Master type drives the clock and data lines of a bus.Bus one round at a
// time. Each bit takes three rounds: the data line is set while the clock is
// low, the clock is raised, and the clock is lowered again. The acknowledge
// slot after every byte is sampled while the clock is high.
//
// Master satisfies the Bus interface of periph.io/x/conn/v3/i2c and the I2C
// interface of tinygo.org/x/drivers. Drivers written for either can be used
// unchanged against the simulated devices on the bus. The Register() function
// adds the master to the periph i2creg registry so that it can be opened by
// name.
//
// Devices on the simulated bus never transmit. Bytes read by the master are
// the level of the line as pulled up by the bus, which is 0xff unless a device
// acknowledges during the byte.
package master
