// This file is part of Thundercracker.
//
// Thundercracker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Thundercracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Thundercracker.  If not, see <https://www.gnu.org/licenses/>.

// Package flash models the master controller's external NOR flash and the
// block cache that sits in front of it.
//
// Flash is erased to 0xff. Writing to flash can only clear bits, so writing
// over data that has not been erased produces the bitwise AND of the old and
// new data.
package flash

import (
	"os"
	"slices"

	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/environment"
	"github.com/glocklueng/thundercracker/logger"
)

// DefaultSize is the capacity of the flash device used by the simulation.
const DefaultSize = 0x100000

// OutOfRange is returned when an access falls outside of the device.
const OutOfRange = "flash: access out of range (%#08x, %d bytes)"

// Device is the flash memory.
type Device struct {
	env *environment.Environment

	// amend Data only through ChipErase() and Write()
	Data []uint8

	// the data as it is on disk
	DiskData []uint8

	// path to the file backing the device. can be empty
	path string
}

// NewDevice is the preferred method of initialisation for the Device type.
// The device is erased. Data is not loaded from the file until Load() is
// called.
func NewDevice(env *environment.Environment, size int, path string) *Device {
	dev := &Device{
		env:      env,
		Data:     make([]uint8, size),
		DiskData: make([]uint8, size),
		path:     path,
	}
	dev.ChipErase()
	copy(dev.DiskData, dev.Data)
	return dev
}

// Size returns the capacity of the device in bytes.
func (dev *Device) Size() int {
	return len(dev.Data)
}

// ChipErase erases the entire device.
func (dev *Device) ChipErase() {
	for i := range dev.Data {
		dev.Data[i] = 0xff
	}
}

func (dev *Device) check(addr uint32, n int) error {
	if uint64(addr)+uint64(n) > uint64(len(dev.Data)) {
		return curated.Errorf(OutOfRange, addr, n)
	}
	return nil
}

// Write data to the device starting at addr.
func (dev *Device) Write(addr uint32, data []uint8) error {
	if err := dev.check(addr, len(data)); err != nil {
		return err
	}
	for i, v := range data {
		dev.Data[int(addr)+i] &= v
	}
	return nil
}

// Read len(data) bytes from the device starting at addr.
func (dev *Device) Read(addr uint32, data []uint8) error {
	if err := dev.check(addr, len(data)); err != nil {
		return err
	}
	copy(data, dev.Data[addr:])
	return nil
}

// Load the device contents from the backing file. A missing file is not an
// error. The device is left erased.
func (dev *Device) Load() error {
	if dev.path == "" {
		return nil
	}

	d, err := os.ReadFile(dev.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf("flash: %v", err)
	}

	if len(d) != len(dev.Data) {
		logger.Logf(dev.env, "flash", "flash file is of incorrect length. %d should be %d", len(d), len(dev.Data))
	}

	dev.ChipErase()
	copy(dev.Data, d)
	copy(dev.DiskData, dev.Data)

	logger.Logf(dev.env, "flash", "flash loaded from %s", dev.path)

	return nil
}

// Save the device contents to the backing file.
func (dev *Device) Save() error {
	if dev.path == "" {
		return nil
	}

	f, err := os.Create(dev.path)
	if err != nil {
		return curated.Errorf("flash: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			logger.Logf(dev.env, "flash", "could not close flash file: %v", err)
		}
	}()

	n, err := f.Write(dev.Data)
	if err != nil {
		return curated.Errorf("flash: %v", err)
	}
	if n != len(dev.Data) {
		return curated.Errorf("flash: short write to %s (%d of %d bytes)", dev.path, n, len(dev.Data))
	}

	logger.Logf(dev.env, "flash", "flash saved to %s", dev.path)

	// copy of data that's just been written to disk
	copy(dev.DiskData, dev.Data)

	return nil
}

// IsSaved returns true if disk data is the same as data.
func (dev *Device) IsSaved() bool {
	return slices.Compare(dev.Data, dev.DiskData) == 0
}
