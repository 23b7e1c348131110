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

package prefs_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/soundpipe/prefs"
	"github.com/jetsetilly/soundpipe/test"
)

func TestGroup(t *testing.T) {
	g := prefs.NewGroup()

	var backend prefs.String
	var samples prefs.Int
	var enabled prefs.Bool

	test.ExpectSuccess(t, g.Add("sound.backend", &backend, "sdl"))
	test.ExpectSuccess(t, g.Add("sound.samples", &samples, 320))
	test.ExpectSuccess(t, g.Add("sound.enabled", &enabled, true))

	// values are set to their default when added
	test.ExpectEquality(t, backend.String(), "sdl")
	test.ExpectEquality(t, samples.Get(), prefs.Value(320))
	test.ExpectEquality(t, enabled.Get(), prefs.Value(true))

	// keys cannot be added twice
	err := g.Add("sound.backend", &backend, "oto")
	test.ExpectSuccess(t, errors.Is(err, prefs.ErrDuplicateKey))

	// set and get by key
	test.ExpectSuccess(t, g.Set("sound.samples", "128"))
	v, err := g.Get("sound.samples")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, prefs.Value(128))

	_, err = g.Get("sound.volume")
	test.ExpectSuccess(t, errors.Is(err, prefs.ErrUnknownKey))
	err = g.Set("sound.volume", 10)
	test.ExpectSuccess(t, errors.Is(err, prefs.ErrUnknownKey))

	test.ExpectEquality(t, g.String(), "sound.backend :: sdl\nsound.enabled :: true\nsound.samples :: 128\n")

	test.ExpectSuccess(t, g.Reset())
	test.ExpectEquality(t, samples.Get(), prefs.Value(320))
	test.ExpectEquality(t, len(g.Keys()), 3)
}

func TestGroupCommandLine(t *testing.T) {
	g := prefs.NewGroup()

	var backend prefs.String
	var samples prefs.Int
	test.ExpectSuccess(t, g.Add("sound.backend", &backend, "sdl"))
	test.ExpectSuccess(t, g.Add("sound.samples", &samples, 320))

	prefs.PushCommandLineStack("sound.backend::oto; sound.samples::lots; unknown::value")
	defer prefs.PopCommandLineStack()

	// an invalid value is reported but the other values are still applied
	test.ExpectFailure(t, g.ApplyCommandLine())
	test.ExpectEquality(t, backend.String(), "oto")
	test.ExpectEquality(t, samples.Get(), prefs.Value(320))

	// values not used by the group are left on the stack
	ok, _ := prefs.GetCommandLinePref("unknown")
	test.ExpectSuccess(t, ok)
}
