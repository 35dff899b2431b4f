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

// Package hardware is the base package for the simulation of an I2C bus. It
// and its sub-packages contain everything required for a headless simulation.
//
// The i2c package and its sub-packages model the bus itself: the shared
// lines, the master that drives them and the slave decoder that turns the
// line levels into bytes for a device. The peripherals package contains the
// devices that can be attached to the bus behind a decoder.
package hardware
