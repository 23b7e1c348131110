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

// Package preferences declares the preference values for the sound pipeline.
package preferences

import (
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/soundpipe/prefs"
)

// Default values for the sound preferences.
const (
	DefaultBackend    = "sdl"
	DefaultSampleRate = 44100
	DefaultSamples    = 320
	DefaultAlignment  = 64
	DefaultFragments  = 4
	DefaultPausePoll  = 20
	DefaultRetryDelay = 50
)

// List of preference keys.
const (
	KeyEnabled    = "sound.enabled"
	KeyBackend    = "sound.backend"
	KeySampleRate = "sound.samplerate"
	KeySamples    = "sound.samples"
	KeyAlignment  = "sound.alignment"
	KeyFragments  = "sound.fragments"
	KeyPausePoll  = "sound.pausepoll"
	KeyRetryDelay = "sound.retrydelay"
)

// Preferences for the sound pipeline.
type Preferences struct {
	group *prefs.Group

	// whether sound is enabled at all. if false the sound device will not be
	// opened and all samples are discarded
	Enabled prefs.Bool

	// name of the output backend
	Backend prefs.String

	// native sample rate of the playback channel
	SampleRate prefs.Int

	// number of samples requested for each playback buffer. the playback
	// engine will round this up to the alignment value
	Samples   prefs.Int
	Alignment prefs.Int

	// number of fragments held by the sample queue
	Fragments prefs.Int

	// pause poll in milliseconds
	PausePoll prefs.Int

	// write retry delay in microseconds
	RetryDelay prefs.Int
}

func (p *Preferences) String() string {
	return p.group.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		group: prefs.NewGroup(),
	}

	p.Backend.SetHookPre(func(v prefs.Value) error {
		if strings.TrimSpace(v.(string)) == "" {
			return fmt.Errorf("backend name cannot be empty")
		}
		return nil
	})
	p.SampleRate.SetHookPre(intRange("sample rate", 8000, 192000))
	p.Samples.SetHookPre(intRange("samples", 1, 16384))
	p.Alignment.SetHookPre(intRange("alignment", 1, 1024))
	p.Fragments.SetHookPre(intRange("fragments", 1, 64))
	p.PausePoll.SetHookPre(intRange("pause poll", 1, 1000))
	p.RetryDelay.SetHookPre(intRange("retry delay", 1, 100000))

	for _, v := range []struct {
		key string
		p   interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
		def prefs.Value
	}{
		{key: KeyEnabled, p: &p.Enabled, def: true},
		{key: KeyBackend, p: &p.Backend, def: DefaultBackend},
		{key: KeySampleRate, p: &p.SampleRate, def: DefaultSampleRate},
		{key: KeySamples, p: &p.Samples, def: DefaultSamples},
		{key: KeyAlignment, p: &p.Alignment, def: DefaultAlignment},
		{key: KeyFragments, p: &p.Fragments, def: DefaultFragments},
		{key: KeyPausePoll, p: &p.PausePoll, def: DefaultPausePoll},
		{key: KeyRetryDelay, p: &p.RetryDelay, def: DefaultRetryDelay},
	} {
		if err := p.group.Add(v.key, v.p, v.def); err != nil {
			return nil, fmt.Errorf("preferences: %w", err)
		}
	}

	return p, nil
}

func intRange(name string, lo, hi int) prefs.Hook {
	return func(v prefs.Value) error {
		if n := v.(int); n < lo || n > hi {
			return fmt.Errorf("%s of %d is outside the range %d to %d", name, n, lo, hi)
		}
		return nil
	}
}

// SetDefaults reverts all sound preferences to their default values.
func (p *Preferences) SetDefaults() error {
	return p.group.Reset()
}

// Set a preference by key.
func (p *Preferences) Set(key string, v prefs.Value) error {
	return p.group.Set(key, v)
}

// ApplyCommandLine sets values from the top of the prefs command line stack.
func (p *Preferences) ApplyCommandLine() error {
	return p.group.ApplyCommandLine()
}

// PausePollInterval returns the PausePoll value as a time.Duration.
func (p *Preferences) PausePollInterval() time.Duration {
	return time.Duration(p.PausePoll.Get().(int)) * time.Millisecond
}

// RetryDelayInterval returns the RetryDelay value as a time.Duration.
func (p *Preferences) RetryDelayInterval() time.Duration {
	return time.Duration(p.RetryDelay.Get().(int)) * time.Microsecond
}
