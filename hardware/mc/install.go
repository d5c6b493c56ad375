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

package mc

import (
	"io"
	"os"

	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/logger"
	"github.com/glocklueng/thundercracker/notifications"
)

// ImageChunk is the size of the chunks in which an image is written to
// flash.
const ImageChunk = 512

// Image installation errors.
const (
	ImageOpen  = "mc: couldn't open image '%s': %v"
	ImageRead  = "mc: error reading image '%s': %v"
	ImageWrite = "mc: error writing image to flash at %#08x: %v"
)

// InstallImage writes the file to flash. The simulation is stopped while the
// flash is written to and restarted afterwards, if it was running.
//
// If the file cannot be opened the flash is left untouched. Otherwise, the
// flash is erased and the file written from address zero. The block cache is
// always invalidated.
func (mc *MC) InstallImage(path string) error {
	mc.crit.Lock()
	defer mc.crit.Unlock()

	restart := mc.running.Load()
	if restart {
		mc.stop()
	}

	logger.Logf(mc.env, "FLASH", "installing image '%s'", path)

	err := mc.writeImage(path)
	if err != nil {
		logger.Log(mc.env, "FLASH", err)
	}

	mc.cache.Invalidate()

	if restart {
		if serr := mc.start(); serr != nil && err == nil {
			err = serr
		}
	}

	if err != nil {
		mc.sendNotification(notifications.NotifyImageFailed)
		return err
	}

	mc.sendNotification(notifications.NotifyImageInstalled)

	return nil
}

func (mc *MC) writeImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return curated.Errorf(ImageOpen, path, err)
	}
	defer f.Close()

	mc.flash.ChipErase()

	buf := make([]uint8, ImageChunk)
	var addr uint32

	for {
		n, err := f.Read(buf)
		if n > 0 {
			werr := mc.flash.Write(addr, buf[:n])
			if werr != nil {
				return curated.Errorf(ImageWrite, addr, werr)
			}
			addr += uint32(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return curated.Errorf(ImageRead, path, err)
		}
	}

	logger.Logf(mc.env, "FLASH", "%d bytes written", addr)

	return nil
}
