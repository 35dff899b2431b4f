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

package capture

import (
	"io"
	"os"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c/bus"
	"github.com/jetsetilly/i2csim/logger"
	"github.com/youpy/go-wav"
)

// CaptureError is returned when a capture can not be saved or loaded.
const CaptureError = "capture: %v"

// SampleRate of saved captures. The bus is not timed so the value is nominal.
const SampleRate = 48000

// the sample values used for a high and low level
const (
	hi = 0x4000
	lo = -0x4000
)

// Level of both lines for one round of the bus.
type Level struct {
	SDA bool
	SCL bool
}

func sample(v bool) int {
	if v {
		return hi
	}
	return lo
}

// Recorder records the levels of the bus every round. Data is buffered in
// memory in its entirety and written with Write() or Save().
type Recorder struct {
	env    *environment.Environment
	buffer []wav.Sample
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. Recording starts immediately.
func NewRecorder(env *environment.Environment, b *bus.Bus) *Recorder {
	rec := &Recorder{
		env: env,
	}
	b.AddObserver(rec.observe)
	return rec
}

func (rec *Recorder) observe(sda, scl bool) {
	s := wav.Sample{}
	s.Values[0] = sample(sda)
	s.Values[1] = sample(scl)
	rec.buffer = append(rec.buffer, s)
}

// Len returns the number of rounds recorded.
func (rec *Recorder) Len() int {
	return len(rec.buffer)
}

// Levels returns the recorded levels.
func (rec *Recorder) Levels() []Level {
	l := make([]Level, len(rec.buffer))
	for i, s := range rec.buffer {
		l[i] = Level{
			SDA: s.Values[0] > 0,
			SCL: s.Values[1] > 0,
		}
	}
	return l
}

// Write the capture to the writer as WAV data.
func (rec *Recorder) Write(w io.Writer) error {
	enc := wav.NewWriter(w, uint32(len(rec.buffer)), 2, SampleRate, 16)
	if enc == nil {
		return curated.Errorf(CaptureError, "bad parameters for wav encoding")
	}
	if err := enc.WriteSamples(rec.buffer); err != nil {
		return curated.Errorf(CaptureError, err)
	}
	return nil
}

// Save the capture to a file.
func (rec *Recorder) Save(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(CaptureError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(CaptureError, err)
		}
	}()

	logger.Logf(rec.env, "capture", "writing %d rounds to %s", len(rec.buffer), filename)

	return rec.Write(f)
}
