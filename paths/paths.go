// This file is part of Soundpipe.
//
// Soundpipe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Soundpipe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Soundpipe.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. use getBasePath() rather than this value
// directly
const baseResourcePath = ".soundpipe"

// ResourcePath returns the resource string prepended with the base path.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return filepath.Join(p...)
}

// CreateResourcePath is the same as ResourcePath() except that the directory
// containing the resource is created if it does not exist.
func CreateResourcePath(resource ...string) (string, error) {
	pth := ResourcePath(resource...)
	if err := os.MkdirAll(filepath.Dir(pth), 0o700); err != nil {
		return "", err
	}
	return pth, nil
}

// note that we're not checking for the existence of the resource, or even the
// existence of baseResourcePath in the config directory
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	home, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(home, baseResourcePath[1:])
}
