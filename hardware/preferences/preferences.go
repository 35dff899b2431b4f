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

package preferences

import (
	"fmt"

	"github.com/jetsetilly/i2csim/prefs"
	"github.com/jetsetilly/i2csim/resources"
)

// Preferences for the simulated bench.
type Preferences struct {
	dsk *prefs.Disk

	// add decoder diagnostics to the central log
	Trace prefs.Bool

	// add the line levels of every tick to the central log. very noisy
	TraceLines prefs.Bool

	// length of line activity recorded by the bus
	Activity prefs.Int

	// file the eeprom image is loaded from and saved to. the empty string
	// means the image is never written to disk
	EEPROMFile prefs.String

	// size of the eeprom in bytes. must be a multiple of the page size
	EEPROMSize prefs.Int

	// bus addresses of the devices on the bench. a value of -1 means the
	// device is not attached to the bus
	EEPROMAddress    prefs.Int
	ExpanderAddress  prefs.Int
	RegistersAddress prefs.Int
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty the default preferences file in the
// resources directory is used.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	address := func(v prefs.Value) error {
		if a := v.(int); a < -1 || a > 0x7f {
			return fmt.Errorf("preferences: bus address out of range (%#x)", a)
		}
		return nil
	}
	p.EEPROMAddress.SetHookPre(address)
	p.ExpanderAddress.SetHookPre(address)
	p.RegistersAddress.SetHookPre(address)

	p.EEPROMSize.SetHookPre(func(v prefs.Value) error {
		if s := v.(int); s <= 0 || s%EEPROMPageSize != 0 || s > 0x10000 {
			return fmt.Errorf("preferences: eeprom size is invalid (%d)", s)
		}
		return nil
	})

	p.Activity.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 2 {
			return fmt.Errorf("preferences: activity length is too short (%d)", v.(int))
		}
		return nil
	})

	p.SetDefaults()

	if path == "" {
		var err error
		path, err = resources.JoinPath(prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("sim.trace", &p.Trace)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sim.trace.lines", &p.TraceLines)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sim.activity", &p.Activity)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("eeprom.file", &p.EEPROMFile)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("eeprom.size", &p.EEPROMSize)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("eeprom.address", &p.EEPROMAddress)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("expander.address", &p.ExpanderAddress)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("registers.address", &p.RegistersAddress)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// EEPROMPageSize is the size of a single EEPROM page. Sequential writes wrap
// around within a page.
const EEPROMPageSize = 0x40

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Trace.Set(false)
	p.TraceLines.Set(false)
	p.Activity.Set(64)
	p.EEPROMFile.Set("")
	p.EEPROMSize.Set(0x8000)
	p.EEPROMAddress.Set(0x50)
	p.ExpanderAddress.Set(0x20)
	p.RegistersAddress.Set(0x68)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
