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

package headless_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/soundpipe/output/headless"
	"github.com/jetsetilly/soundpipe/playback"
	"github.com/jetsetilly/soundpipe/test"
)

func TestPacing(t *testing.T) {
	hl := headless.NewHeadless()

	// each buffer is 10ms of audio
	test.DemandSuccess(t, hl.Reserve(441, playback.Format{SampleRate: 44100, Channels: 1}))

	buf := make([]int16, 441)
	buf[10] = -1234

	start := time.Now()
	for range 10 {
		test.ExpectSuccess(t, hl.Output(playback.MaxVolume, buf))
	}

	// ten buffers cannot be output in less than about 100ms
	test.ExpectSuccess(t, time.Since(start) >= 90*time.Millisecond)
	test.ExpectEquality(t, hl.Outputs(), uint64(10))
	test.ExpectEquality(t, hl.Peak(), 1234)
	test.ExpectSuccess(t, hl.Release())
}
