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

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.String(), "false")

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get(), prefs.Value(true))

	// any string other than "true" is false
	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get(), prefs.Value(false))
	test.ExpectSuccess(t, v.Set("TRUE"))
	test.ExpectEquality(t, v.String(), "true")

	test.ExpectFailure(t, v.Set(10))
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.String(), "false")
}

func TestString(t *testing.T) {
	var v prefs.String
	test.ExpectEquality(t, v.String(), "")

	test.ExpectSuccess(t, v.Set("sdl"))
	test.ExpectEquality(t, v.Get(), prefs.Value("sdl"))

	// setting the maximum length crops the existing value
	v.SetMaxLen(2)
	test.ExpectEquality(t, v.String(), "sd")
	test.ExpectSuccess(t, v.Set("headless"))
	test.ExpectEquality(t, v.String(), "he")
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectEquality(t, v.String(), "0")

	test.ExpectSuccess(t, v.Set(320))
	test.ExpectEquality(t, v.Get(), prefs.Value(320))

	// string conversion
	test.ExpectSuccess(t, v.Set(" 99"))
	test.ExpectEquality(t, v.Get(), prefs.Value(99))
	test.ExpectFailure(t, v.Set("ninety nine"))
	test.ExpectEquality(t, v.Get(), prefs.Value(99))
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectEquality(t, v.String(), "0.000")

	test.ExpectSuccess(t, v.Set(0.5))
	test.ExpectEquality(t, v.String(), "0.500")
	test.ExpectSuccess(t, v.Set("1.25"))
	test.ExpectEquality(t, v.Get(), prefs.Value(1.25))
	test.ExpectSuccess(t, v.Set(2))
	test.ExpectEquality(t, v.Get(), prefs.Value(2.0))
}

func TestHooks(t *testing.T) {
	var v prefs.Int

	// the pre hook can reject a value before it is stored
	v.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 0 {
			return errors.New("negative")
		}
		return nil
	})

	var post []int
	v.SetHookPost(func(value prefs.Value) error {
		post = append(post, value.(int))
		return nil
	})

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get(), prefs.Value(10))

	// the post hook is called even if the value has not changed
	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, len(post), 2)
}
