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

// Package paths contains functions to prepare paths for the program's
// resources: the preferences file, the persistent flash image and so on.
//
// Resources are stored in a directory named ".thundercracker" in the current
// working directory if such a directory exists. Otherwise, resources are
// stored in a "thundercracker" directory in the user's configuration
// directory, as returned by os.UserConfigDir().
package paths
