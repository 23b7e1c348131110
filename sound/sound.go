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
	"fmt"
	"sync"

	"github.com/jetsetilly/soundpipe/logger"
	"github.com/jetsetilly/soundpipe/preferences"
)

const logTag = "sound"

// Sound is the emulation's view of the sound device.
//
// Write() is intended to be called from the emulation goroutine. The control
// functions (Suspend(), Resume(), Flush()) can be called from any goroutine,
// including while a call to Write() is in progress.
type Sound struct {
	reg   *Registry
	prefs *preferences.Preferences

	// Open() and Close() take the write lock. all other functions take the
	// read lock, allowing Suspend() to interrupt a blocked Write()
	crit   sync.RWMutex
	dev    Device
	params Params
}

// NewSound is the preferred method of initialisation for the Sound type.
func NewSound(reg *Registry, prefs *preferences.Preferences) *Sound {
	return &Sound{
		reg:   reg,
		prefs: prefs,
	}
}

// Open the named device, closing any currently open device first.
//
// If sound is disabled in the preferences, no device is opened and the
// function returns nil. If the device cannot be opened the error is logged
// and returned, and sound output is disabled. In both cases calls to Write()
// will be accepted and the samples discarded.
func (snd *Sound) Open(name string) error {
	snd.Close()

	snd.crit.Lock()
	defer snd.crit.Unlock()

	if !snd.prefs.Enabled.Get().(bool) {
		logger.Log(logger.Allow, logTag, "sound is disabled")
		return nil
	}

	dev, ok := snd.reg.Lookup(name)
	if !ok {
		err := fmt.Errorf("sound: %w: %s", ErrNoDevice, name)
		logger.Log(logger.Allow, logTag, err)
		return err
	}

	params := Params{
		Speed:         snd.prefs.SampleRate.Get().(int),
		FragmentSize:  snd.prefs.Samples.Get().(int) * 2,
		FragmentCount: snd.prefs.Fragments.Get().(int),
		Channels:      1,
	}

	if err := dev.Init(&params); err != nil {
		err = fmt.Errorf("sound: %s: %w", name, err)
		logger.Log(logger.Allow, logTag, err)
		logger.Log(logger.Allow, logTag, "continuing without sound")
		return err
	}

	snd.dev = dev
	snd.params = params

	logger.Logf(logger.Allow, logTag, "opened %s: %s", name, params)

	return nil
}

// Enabled returns true if a device is open.
func (snd *Sound) Enabled() bool {
	snd.crit.RLock()
	defer snd.crit.RUnlock()
	return snd.dev != nil
}

// Params returns the parameters of the open device, as adjusted by the
// device. The zero value is returned if no device is open.
func (snd *Sound) Params() Params {
	snd.crit.RLock()
	defer snd.crit.RUnlock()
	return snd.params
}

// Write samples to the device. Samples are discarded if no device is open.
func (snd *Sound) Write(samples []int16) error {
	snd.crit.RLock()
	defer snd.crit.RUnlock()
	if snd.dev == nil {
		return nil
	}
	return snd.dev.Write(samples)
}

// Suspend sound output.
func (snd *Sound) Suspend() error {
	snd.crit.RLock()
	defer snd.crit.RUnlock()
	if snd.dev == nil {
		return nil
	}
	return snd.dev.Suspend()
}

// Resume sound output.
func (snd *Sound) Resume() error {
	snd.crit.RLock()
	defer snd.crit.RUnlock()
	if snd.dev == nil {
		return nil
	}
	return snd.dev.Resume()
}

// Flush discards any samples waiting to be played, if the device supports it.
// Should be called when the emulation is reset or when the media changes.
func (snd *Sound) Flush() {
	snd.crit.RLock()
	defer snd.crit.RUnlock()
	if f, ok := snd.dev.(Flusher); ok {
		f.Flush()
	}
}

// Close the device. Safe to call if no device is open.
func (snd *Sound) Close() {
	// suspend the device before waiting for the write lock. a Write() in
	// progress will return once the device is suspended
	if err := snd.Suspend(); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}

	snd.crit.Lock()
	defer snd.crit.Unlock()

	if snd.dev == nil {
		return
	}

	snd.dev.Close()
	logger.Logf(logger.Allow, logTag, "closed %s", snd.dev.Name())
	snd.dev = nil
	snd.params = Params{}
}
