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

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/i2csim/hardware/preferences"
	"github.com/jetsetilly/i2csim/prefs"
	"github.com/jetsetilly/i2csim/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Trace.Get().(bool), false)
	test.ExpectEquality(t, p.EEPROMAddress.Get().(int), 0x50)
	test.ExpectEquality(t, p.ExpanderAddress.Get().(int), 0x20)
	test.ExpectEquality(t, p.RegistersAddress.Get().(int), 0x68)
	test.ExpectEquality(t, p.EEPROMSize.Get().(int), 0x8000)
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.EEPROMAddress.Set(0x80))
	test.ExpectSuccess(t, p.EEPROMAddress.Set(-1))
	test.ExpectFailure(t, p.EEPROMSize.Set(100))
	test.ExpectSuccess(t, p.EEPROMSize.Set(0x1000))
	test.ExpectFailure(t, p.Activity.Set(1))
}

func TestSaveAndLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	p, err := preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Trace.Set(true))
	test.ExpectSuccess(t, p.EEPROMAddress.Set("0x51"))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.Trace.Get().(bool), true)
	test.ExpectEquality(t, q.EEPROMAddress.Get().(int), 0x51)

	// command line overrides what is on disk
	prefs.PushCommandLineStack("eeprom.address::0x52")
	defer prefs.PopCommandLineStack()
	test.DemandSuccess(t, q.Load())
	test.ExpectEquality(t, q.EEPROMAddress.Get().(int), 0x52)
}
