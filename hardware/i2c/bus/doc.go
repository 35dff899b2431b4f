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

// Package bus implements the shared two-wire medium that simulated devices are
// attached to.
//
// The master drives the bus with the Step() function. Each call is one round
// of the simulation: every registered device is ticked, in the order in which
// they were registered, with the levels of both lines before and after the
// round.
//
// The lines are open-drain. A device that calls SetSDA() with a low level
// holds the data line low regardless of what the master or any other device
// is doing. Devices ticked later in the same round see the effect of the hold
// immediately. A hold lasts until the next falling edge of the clock line, by
// which time the master has sampled the acknowledge slot.
package bus
