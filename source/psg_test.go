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

package source_test

import (
	"testing"

	"github.com/jetsetilly/soundpipe/source"
	"github.com/jetsetilly/soundpipe/test"
)

func TestPSGTone(t *testing.T) {
	test.ExpectEquality(t, source.PSGTone(440), 254)

	// the register is 10 bits wide and zero is not a useful value
	test.ExpectEquality(t, source.PSGTone(0), 0x3ff)
	test.ExpectEquality(t, source.PSGTone(1), 0x3ff)
	test.ExpectEquality(t, source.PSGTone(1e9), 1)
}

func TestPSG(t *testing.T) {
	psg := source.NewPSG([]float64{440, 550, 660}, 100, 48000)

	buf := make([]int16, 250)
	test.ExpectFailure(t, psg.Generate(buf))

	var sound bool
	for _, s := range buf {
		if s != 0 {
			sound = true
			break // for loop
		}
	}
	test.ExpectSuccess(t, sound)

	// the third note ends after another 50 samples
	test.ExpectSuccess(t, psg.Generate(buf[:50]))
	test.ExpectFailure(t, psg.Generate(buf[:50]))

	// after a reset the arpeggio starts again from the first note
	psg.Generate(buf[:120])
	psg.Reset()
	test.ExpectFailure(t, psg.Generate(buf))
	test.ExpectSuccess(t, psg.Generate(buf[:50]))
}
