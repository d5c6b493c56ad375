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

package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const baseResourcePath = ".thundercracker"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with the resource directory. Any directories leading up
// to the resource are created if necessary.
//
// Empty path elements are ignored and the resource directory alone is returned
// if there are no non-empty elements.
func ResourcePath(resource ...string) (string, error) {
	b, err := getBasePath()
	if err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	p := make([]string, 0, len(resource)+1)
	p = append(p, b)
	for _, r := range resource {
		if r != "" {
			p = append(p, r)
		}
	}
	pth := filepath.Join(p...)

	// create the directory leading up to the resource. the final element of
	// the resource is assumed to be a file
	dir := pth
	if len(p) > 1 {
		dir = filepath.Dir(pth)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	return pth, nil
}

func getBasePath() (string, error) {
	if info, err := os.Stat(baseResourcePath); err == nil && info.IsDir() {
		return baseResourcePath, nil
	}

	home, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, baseResourcePath[1:]), nil
}
