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

// Package notifications allow communication from the simulation to the
// surrounding program. For example, the command line tool is notified when
// the firmware exits or when a new image has been installed.
package notifications

// Notice describes events that somehow change the presentation of the
// simulation.
type Notice string

// List of defined notifications.
const (
	// the firmware loader has returned. the simulation thread continues to
	// service the radio without any firmware
	NotifyFirmwareExited Notice = "NotifyFirmwareExited"

	// a new firmware image has been written to flash
	NotifyImageInstalled Notice = "NotifyImageInstalled"

	// an attempt to install a firmware image has failed. existing flash
	// content may or may not have been changed
	NotifyImageFailed Notice = "NotifyImageFailed"

	// the simulation thread has been stopped and joined
	NotifyStopped Notice = "NotifyStopped"
)

// Notify is used for direct communication between the simulation and the
// surrounding program.
type Notify interface {
	Notify(notice Notice) error
}
