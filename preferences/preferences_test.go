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

package preferences_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/soundpipe/preferences"
	"github.com/jetsetilly/soundpipe/prefs"
	"github.com/jetsetilly/soundpipe/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Enabled.Get(), prefs.Value(true))
	test.ExpectEquality(t, p.Backend.String(), preferences.DefaultBackend)
	test.ExpectEquality(t, p.SampleRate.Get(), prefs.Value(44100))
	test.ExpectEquality(t, p.Samples.Get(), prefs.Value(320))
	test.ExpectEquality(t, p.Alignment.Get(), prefs.Value(64))
	test.ExpectEquality(t, p.Fragments.Get(), prefs.Value(4))
	test.ExpectEquality(t, p.PausePollInterval(), 20*time.Millisecond)
	test.ExpectEquality(t, p.RetryDelayInterval(), 50*time.Microsecond)
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	// out of range values are rejected and the previous value is kept
	test.ExpectFailure(t, p.Samples.Set(0))
	test.ExpectFailure(t, p.Fragments.Set(1000))
	test.ExpectFailure(t, p.SampleRate.Set("100"))
	test.ExpectFailure(t, p.Backend.Set(" "))
	test.ExpectEquality(t, p.Samples.Get(), prefs.Value(320))
	test.ExpectEquality(t, p.Fragments.Get(), prefs.Value(4))
	test.ExpectEquality(t, p.SampleRate.Get(), prefs.Value(44100))
	test.ExpectEquality(t, p.Backend.String(), preferences.DefaultBackend)

	test.ExpectSuccess(t, p.Set("sound.samples", 512))
	test.ExpectEquality(t, p.Samples.Get(), prefs.Value(512))
	test.ExpectSuccess(t, p.SetDefaults())
	test.ExpectEquality(t, p.Samples.Get(), prefs.Value(320))
}

func TestCommandLine(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	prefs.PushCommandLineStack("sound.backend::headless; sound.fragments::8")
	defer prefs.PopCommandLineStack()

	test.ExpectSuccess(t, p.ApplyCommandLine())
	test.ExpectEquality(t, p.Backend.String(), "headless")
	test.ExpectEquality(t, p.Fragments.Get(), prefs.Value(8))
}
