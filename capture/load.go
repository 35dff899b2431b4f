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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/i2c/bus"
	"github.com/jetsetilly/i2csim/logger"
)

// Load a capture from a WAV or MP3 file. The type of file is decided by the
// file extension.
func Load(env *environment.Environment, filename string) ([]Level, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}
	defer f.Close()

	var levels []Level

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		levels, err = loadWAV(f)
	case ".mp3":
		levels, err = loadMP3(f)
	default:
		return nil, curated.Errorf(CaptureError, fmt.Sprintf("unsupported file type: %s", filename))
	}
	if err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}

	logger.Logf(env, "capture", "loaded %d rounds from %s", len(levels), filename)

	return levels, nil
}

func loadWAV(r io.ReadSeeker) ([]Level, error) {
	dec := wav.NewDecoder(r)
	if dec == nil {
		return nil, fmt.Errorf("wav: error decoding")
	}

	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid wav file")
	}

	if dec.NumChans != 2 {
		return nil, fmt.Errorf("wav: capture must have two channels, not %d", dec.NumChans)
	}

	// load all data at once
	var buf *audio.IntBuffer
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	levels := make([]Level, 0, len(buf.Data)/2)
	for i := 0; i+1 < len(buf.Data); i += 2 {
		levels = append(levels, Level{
			SDA: buf.Data[i] > 0,
			SCL: buf.Data[i+1] > 0,
		})
	}

	return levels, nil
}

func loadMP3(r io.Reader) ([]Level, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	// the stream is always 16bit little endian with two channels, even if
	// the source is a single channel MP3. a sample is therefore four bytes
	var levels []Level

	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+3 < n; i += 4 {
			left := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			right := int16(uint16(chunk[i+2]) | uint16(chunk[i+3])<<8)
			levels = append(levels, Level{
				SDA: left > 0,
				SCL: right > 0,
			})
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("mp3: %w", err)
		}
	}

	return levels, nil
}

// Replay the levels through the bus. The levels are driven as if by the
// master, one round per level.
func Replay(b *bus.Bus, levels []Level) {
	for _, l := range levels {
		b.Step(l.SDA, l.SCL)
	}
}
