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

package eeprom

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/jetsetilly/i2csim/curated"
	"github.com/jetsetilly/i2csim/hardware/preferences"
)

// DiskError is returned when the EEPROM can not be read from or written to
// disk.
const DiskError = "eeprom: disk: %v"

// PageSize of the EEPROM.
const PageSize = preferences.EEPROMPageSize

// Memory is the non-volatile memory of the EEPROM.
type Memory struct {
	// the next address a read or write will access
	Address uint16

	// amend Data only through put() and Poke()
	Data []uint8

	// the data as it is on disk. data is mutable and we need a way of
	// comparing what's on disk with what's in memory.
	DiskData []uint8

	// whether a page has been accessed
	PageAccess []bool

	// the file the memory is read from and written to. can be empty
	filename string
}

func newMemory(size int, filename string) *Memory {
	mem := &Memory{
		Data:       make([]uint8, size),
		DiskData:   make([]uint8, size),
		PageAccess: make([]bool, size/PageSize),
		filename:   filename,
	}

	// an erased EEPROM reads 0xff
	for i := range mem.Data {
		mem.Data[i] = 0xff
	}
	copy(mem.DiskData, mem.Data)

	return mem
}

func (mem *Memory) snapshot() *Memory {
	cp := *mem
	cp.Data = make([]uint8, len(mem.Data))
	cp.DiskData = make([]uint8, len(mem.DiskData))
	cp.PageAccess = make([]bool, len(mem.PageAccess))
	copy(cp.Data, mem.Data)
	copy(cp.DiskData, mem.DiskData)
	copy(cp.PageAccess, mem.PageAccess)
	return &cp
}

// Read memory from disk. A missing file is not an error and leaves memory
// unchanged.
func (mem *Memory) Read() error {
	if mem.filename == "" {
		return nil
	}

	d, err := os.ReadFile(mem.filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return curated.Errorf(DiskError, err)
	}

	if len(d) != len(mem.Data) {
		return curated.Errorf(DiskError, fmt.Errorf("file is of incorrect length. %d should be %d", len(d), len(mem.Data)))
	}

	copy(mem.Data, d)

	// copy of data read from disk
	copy(mem.DiskData, mem.Data)

	return nil
}

// Write memory to disk. Nothing is written if the memory is the same as the
// data on disk.
func (mem *Memory) Write() error {
	if mem.filename == "" || mem.IsSaved() {
		return nil
	}

	err := os.WriteFile(mem.filename, mem.Data, 0o644)
	if err != nil {
		return curated.Errorf(DiskError, err)
	}

	// copy of data that's just been written to disk
	copy(mem.DiskData, mem.Data)

	return nil
}

// Poke a value into memory.
func (mem *Memory) Poke(address uint16, data uint8) {
	mem.Data[int(address)%len(mem.Data)] = data
}

// Peek at a value in memory.
func (mem *Memory) Peek(address uint16) uint8 {
	return mem.Data[int(address)%len(mem.Data)]
}

// IsSaved returns true if disk data is the same as data.
func (mem *Memory) IsSaved() bool {
	return slices.Compare(mem.Data, mem.DiskData) == 0
}

// IsDirty returns true if the value at the address is different to the value
// on disk.
func (mem *Memory) IsDirty(address uint16) bool {
	a := int(address) % len(mem.Data)
	return mem.Data[a] != mem.DiskData[a]
}

func (mem *Memory) setAddress(address uint16) {
	mem.Address = uint16(int(address) % len(mem.Data))
}

func (mem *Memory) access() {
	p := mem.Address / PageSize
	mem.PageAccess[p] = true
}

func (mem *Memory) put(v uint8) {
	mem.access()
	mem.Data[mem.Address] = v
	mem.nextAddress()
}

func (mem *Memory) get() uint8 {
	defer func() {
		mem.nextAddress()
		mem.access()
	}()
	return mem.Data[mem.Address]
}

// nextAddress makes sure the address is kept on the same page, by looping back
// to the start of the current page.
func (mem *Memory) nextAddress() {
	if mem.Address&(PageSize-1) == PageSize-1 {
		mem.Address ^= PageSize - 1
	} else {
		mem.Address++
	}
}
