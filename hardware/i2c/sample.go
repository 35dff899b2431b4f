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

// Sample records the level of both lines for a single tick of the bus. The
// levels of the previous tick are included so that edges can be detected.
type Sample struct {
	SDA    bool
	SCL    bool
	OldSDA bool
	OldSCL bool
}

func level(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (s Sample) String() string {
	return "SDA=" + level(s.SDA) + ", SCL=" + level(s.SCL)
}

// ClockHeld returns true if SCL is high on both ticks.
func (s Sample) ClockHeld() bool {
	return s.OldSCL && s.SCL
}

// ClockRising returns true if SCL has moved from low to high.
func (s Sample) ClockRising() bool {
	return !s.OldSCL && s.SCL
}

// ClockFalling returns true if SCL has moved from high to low.
func (s Sample) ClockFalling() bool {
	return s.OldSCL && !s.SCL
}

// DataRising returns true if SDA has moved from low to high.
func (s Sample) DataRising() bool {
	return !s.OldSDA && s.SDA
}

// DataFalling returns true if SDA has moved from high to low.
func (s Sample) DataFalling() bool {
	return s.OldSDA && !s.SDA
}

// Start returns true if the sample is a START condition.
func (s Sample) Start() bool {
	return s.ClockHeld() && s.DataFalling()
}

// Stop returns true if the sample is a STOP condition.
func (s Sample) Stop() bool {
	return s.ClockHeld() && s.DataRising()
}
