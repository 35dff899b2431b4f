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

// Package capture records the activity of the simulated bus as a logic
// capture and replays captures through the bus.
//
// A capture is a two channel, 16-bit WAV file. The left channel is SDA and the
// right channel is SCL. A high level is recorded as a positive sample and a low
// level as a negative sample. Every sample is one round of the bus.
//
// Captures can be loaded from WAV or MP3 files. Samples greater than zero are
// taken to be high. MP3 captures are lossy and only suitable if the levels are
// held for several samples.
package capture
