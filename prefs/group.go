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

package prefs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Sentinel errors returned by Group functions.
var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrDuplicateKey = errors.New("duplicate key")
)

type entry struct {
	p   pref
	def Value
}

// Group collects preference values under string keys.
type Group struct {
	crit    sync.Mutex
	entries map[string]entry
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]entry),
	}
}

// Add a preference value to the group. The value is immediately set to the
// default value, which is also used by Reset().
func (g *Group) Add(key string, p pref, def Value) error {
	g.crit.Lock()
	defer g.crit.Unlock()

	if _, ok := g.entries[key]; ok {
		return fmt.Errorf("prefs: %w: %s", ErrDuplicateKey, key)
	}
	if err := p.Set(def); err != nil {
		return fmt.Errorf("prefs: %s: %w", key, err)
	}
	g.entries[key] = entry{p: p, def: def}

	return nil
}

// Set the value of the preference with the specified key.
func (g *Group) Set(key string, v Value) error {
	g.crit.Lock()
	defer g.crit.Unlock()

	e, ok := g.entries[key]
	if !ok {
		return fmt.Errorf("prefs: %w: %s", ErrUnknownKey, key)
	}
	if err := e.p.Set(v); err != nil {
		return fmt.Errorf("prefs: %s: %w", key, err)
	}
	return nil
}

// Get the value of the preference with the specified key.
func (g *Group) Get(key string) (Value, error) {
	g.crit.Lock()
	defer g.crit.Unlock()

	e, ok := g.entries[key]
	if !ok {
		return nil, fmt.Errorf("prefs: %w: %s", ErrUnknownKey, key)
	}
	return e.p.Get(), nil
}

// Reset all values in the group to their defaults.
func (g *Group) Reset() error {
	g.crit.Lock()
	defer g.crit.Unlock()

	for key, e := range g.entries {
		if err := e.p.Set(e.def); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}
	return nil
}

// ApplyCommandLine sets any value in the group that has been specified in the
// top group of the command line stack. The first value that fails to set is
// returned as an error but all values are attempted.
func (g *Group) ApplyCommandLine() error {
	g.crit.Lock()
	defer g.crit.Unlock()

	var first error
	for _, key := range g.keys() {
		if ok, v := GetCommandLinePref(key); ok {
			if err := g.entries[key].p.Set(v); err != nil && first == nil {
				first = fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
	}
	return first
}

// keys in sorted order. must be called with the critical section locked
func (g *Group) keys() []string {
	keys := make([]string, 0, len(g.entries))
	for key := range g.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Keys returns the keys in the group in sorted order.
func (g *Group) Keys() []string {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.keys()
}

// String returns one "key :: value" line for every value in the group, sorted
// by key.
func (g *Group) String() string {
	g.crit.Lock()
	defer g.crit.Unlock()

	var s strings.Builder
	for _, key := range g.keys() {
		s.WriteString(fmt.Sprintf("%s :: %s\n", key, g.entries[key].p))
	}
	return s.String()
}
