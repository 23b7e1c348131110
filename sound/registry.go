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

package sound

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors returned by the Registry and by the Sound type.
var (
	ErrDuplicateDevice = errors.New("device already registered")
	ErrNoDevice        = errors.New("no such device")
)

// Registry of available sound devices.
type Registry struct {
	crit    sync.Mutex
	devices map[string]Device
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]Device),
	}
}

// Register a device under its name.
func (r *Registry) Register(dev Device) error {
	r.crit.Lock()
	defer r.crit.Unlock()

	name := dev.Name()
	if _, ok := r.devices[name]; ok {
		return fmt.Errorf("sound: %w: %s", ErrDuplicateDevice, name)
	}
	r.devices[name] = dev
	return nil
}

// Lookup a device by name.
func (r *Registry) Lookup(name string) (Device, bool) {
	r.crit.Lock()
	defer r.crit.Unlock()
	dev, ok := r.devices[name]
	return dev, ok
}

// Names of all registered devices in sorted order.
func (r *Registry) Names() []string {
	r.crit.Lock()
	defer r.crit.Unlock()

	names := make([]string, 0, len(r.devices))
	for n := range r.devices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
