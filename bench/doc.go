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

// Package bench assembles a complete simulation: the bus, the master and the
// devices named in the preferences, each behind its own slave decoder.
//
// A device whose address preference is -1 is not attached to the bus. The
// devices are registered with the bus in a fixed order: eeprom, expander and
// then registers.
package bench
